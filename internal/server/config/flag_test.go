package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "memory://", "-m", "reviews", "-s", "secret", "-t", "5", "-l", "debug",
			},
			expected: &Config{
				HTTPAddr:              "127.0.0.1:9090",
				DatabaseDSN:           "memory://",
				MongoDatabase:         "reviews",
				SecretKey:             "secret",
				TokenValidityDuration: 5 * time.Minute,
				LogLevel:              "debug",
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-env-file", "x.env", "-a", ":1"},
			expected: &Config{HTTPAddr: ":1"},
		},
		{
			name:        "zero ttl",
			args:        []string{"-t", "0"},
			expectPanic: true,
		},
		{
			name:        "negative ttl",
			args:        []string{"-t", "-1"},
			expectPanic: true,
		},
		{
			name:        "bad ttl",
			args:        []string{"-t", "ten"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config, tt.args) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config, tt.args) })
			}
		})
	}
}
