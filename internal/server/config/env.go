package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Environment variables read by parseEnv.
const (
	EnvHTTPAddr         = "HTTP_ADDR"
	EnvDatabaseDSN      = "DATABASE_DSN"
	EnvMongoURI         = "MONGODB_URI"
	EnvMongoDatabase    = "MONGODB_DATABASE"
	EnvJWTSecret        = "JWT_SECRET"
	EnvTokenTTLMinutes  = "TOKEN_TTL_MINUTES"
	EnvCORSAllowOrigins = "CORS_ALLOW_ORIGINS"
	EnvLogLevel         = "LOG_LEVEL"
)

// parseEnv loads the dotenv file (from -env-file, or ./.env when present)
// and overlays Config with the environment. Variables already set in the
// process environment take priority over the file.
//
// DATABASE_DSN wins over MONGODB_URI when both are set.
func parseEnv(config *Config, args []string) {
	envFile := flagx.EnvFileFlags(args)
	if envFile == "" {
		if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	} else if err := godotenv.Load(envFile); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, EnvHTTPAddr)
	setString(&config.DatabaseDSN, EnvMongoURI)
	setString(&config.DatabaseDSN, EnvDatabaseDSN)
	setString(&config.MongoDatabase, EnvMongoDatabase)
	setString(&config.SecretKey, EnvJWTSecret)
	setString(&config.LogLevel, EnvLogLevel)

	if v, ok := os.LookupEnv(EnvTokenTTLMinutes); ok && v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		if minutes <= 0 {
			panic(fmt.Sprintf("%s must be positive, got %d", EnvTokenTTLMinutes, minutes))
		}
		config.TokenValidityDuration = time.Duration(minutes) * time.Minute
	}

	if v, ok := os.LookupEnv(EnvCORSAllowOrigins); ok && v != "" {
		config.CORSAllowOrigins = splitList(v)
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
