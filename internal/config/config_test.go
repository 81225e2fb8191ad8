package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/common"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultConfidenceThreshold, cfg.ConfidenceThreshold)
	assert.Equal(t, DefaultHighConfidenceThreshold, cfg.HighConfidenceThreshold)
	assert.Equal(t, "Другое", cfg.DefaultCategory)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.DatabasePath)
	// Tilde paths come back expanded.
	assert.NotContains(t, cfg.DatabasePath, "~")
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("database.path", "/tmp/spender-test.db")
	viper.Set("classifier.confidence_threshold", 0.7)
	viper.Set("classifier.high_confidence_threshold", 0.9)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/spender-test.db", cfg.DatabasePath)
	assert.Equal(t, 0.7, cfg.ConfidenceThreshold)
	assert.Equal(t, 0.9, cfg.HighConfidenceThreshold)
}

func TestValidate(t *testing.T) {
	valid := Config{
		DatabasePath:            "/tmp/test.db",
		DefaultCategory:         "Другое",
		ConfidenceThreshold:     0.8,
		HighConfidenceThreshold: 0.85,
	}

	tests := []struct {
		mutate  func(*Config)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(_ *Config) {}, wantErr: false},
		{name: "equal thresholds", mutate: func(c *Config) { c.HighConfidenceThreshold = c.ConfidenceThreshold }, wantErr: false},
		{name: "threshold above one", mutate: func(c *Config) { c.ConfidenceThreshold = 1.2 }, wantErr: true},
		{name: "negative threshold", mutate: func(c *Config) { c.HighConfidenceThreshold = -0.1 }, wantErr: true},
		{name: "inverted band", mutate: func(c *Config) { c.HighConfidenceThreshold = 0.5 }, wantErr: true},
		{name: "empty database path", mutate: func(c *Config) { c.DatabasePath = "" }, wantErr: true},
		{name: "empty default category", mutate: func(c *Config) { c.DefaultCategory = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("SPENDER_TEST_DIR", "/opt/spender")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "absolute untouched", path: "/var/lib/spender.db", want: "/var/lib/spender.db"},
		{name: "tilde", path: "~/data/spender.db", want: filepath.Join(home, "data/spender.db")},
		{name: "bare tilde", path: "~", want: home},
		{name: "env var", path: "$SPENDER_TEST_DIR/spender.db", want: "/opt/spender/spender.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}
