package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-d string   database DSN
//	-m string   MongoDB database name
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes (positive)
//	-l string   log level
//
// Args are filtered with flagx.FilterArgs first so flags owned by other
// loaders (-c, -env-file) do not trip the parser.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-m", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoDatabase, "m", config.MongoDatabase, "MongoDB database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" && *tokenValidity <= 0 {
			panic(fmt.Sprintf("-t must be positive, got %d", *tokenValidity))
		}
	})

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
