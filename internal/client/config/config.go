// Package config holds the feedbackctl settings.
//
// Precedence is defaults, then an optional JSON file, then environment
// variables. Command-line flags are applied on top by the cli package.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/timex"
)

const (
	EnvServerURL = "FEEDBACKCTL_SERVER"
	EnvStatePath = "FEEDBACKCTL_STATE"
	EnvTimeout   = "FEEDBACKCTL_TIMEOUT"
)

type Config struct {
	ServerURL string
	StatePath string
	Timeout   time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000"
	c.StatePath = defaultStatePath()
	c.Timeout = 10 * time.Second
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".feedbackctl", "state.db")
	}
	return filepath.Join(home, ".feedbackctl", "state.db")
}

// JsonConfig is the on-disk shape; empty fields leave earlier values alone.
type JsonConfig struct {
	ServerURL string         `json:"server_url"`
	StatePath string         `json:"state_path"`
	Timeout   timex.Duration `json:"timeout"`
}

// Load applies defaults, the JSON file at jsonPath (skipped when empty) and
// the environment.
func Load(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if jsonPath != "" {
		if err := cfg.parseJson(jsonPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.parseEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parseJson(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerURL != "" {
		c.ServerURL = jc.ServerURL
	}
	if jc.StatePath != "" {
		c.StatePath = jc.StatePath
	}
	if jc.Timeout.Duration > 0 {
		c.Timeout = jc.Timeout.Duration
	}
	return nil
}

func (c *Config) parseEnv() error {
	if v, ok := os.LookupEnv(EnvServerURL); ok && v != "" {
		c.ServerURL = v
	}
	if v, ok := os.LookupEnv(EnvStatePath); ok && v != "" {
		c.StatePath = v
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Timeout = d
	}
	return nil
}
