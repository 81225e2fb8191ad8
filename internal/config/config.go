// Package config resolves the spender configuration: database and model
// artifact locations, classifier confidence thresholds, and logging.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/common"
)

// Config is the typed application configuration resolved from Viper.
type Config struct {
	DatabasePath            string
	ModelPath               string
	TrainingDataPath        string
	LogLevel                string
	LogFormat               string
	DefaultCategory         string
	ConfidenceThreshold     float64
	HighConfidenceThreshold float64
}

// Defaults applied when the config file and environment are silent.
const (
	DefaultDatabasePath            = "~/.local/share/spender/spender.db"
	DefaultModelPath               = "~/.local/share/spender/classifier.gob"
	DefaultTrainingDataPath        = "train_data.csv"
	DefaultConfidenceThreshold     = 0.80
	DefaultHighConfidenceThreshold = 0.85
)

// Load resolves the application configuration from Viper. Precedence is the
// standard Viper one: explicit config file, then SPENDER_ environment
// variables, then defaults.
func Load() (*Config, error) {
	viper.SetDefault("database.path", DefaultDatabasePath)
	viper.SetDefault("classifier.model_path", DefaultModelPath)
	viper.SetDefault("classifier.training_data", DefaultTrainingDataPath)
	viper.SetDefault("classifier.confidence_threshold", DefaultConfidenceThreshold)
	viper.SetDefault("classifier.high_confidence_threshold", DefaultHighConfidenceThreshold)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("categories.default", "Другое")

	cfg := &Config{
		DatabasePath:            ExpandPath(viper.GetString("database.path")),
		ModelPath:               ExpandPath(viper.GetString("classifier.model_path")),
		TrainingDataPath:        ExpandPath(viper.GetString("classifier.training_data")),
		LogLevel:                viper.GetString("logging.level"),
		LogFormat:               viper.GetString("logging.format"),
		DefaultCategory:         viper.GetString("categories.default"),
		ConfidenceThreshold:     viper.GetFloat64("classifier.confidence_threshold"),
		HighConfidenceThreshold: viper.GetFloat64("classifier.high_confidence_threshold"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the thresholds form a sane confidence band.
func (c *Config) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: confidence_threshold %v must be in [0, 1]",
			common.ErrInvalidConfig, c.ConfidenceThreshold)
	}
	if c.HighConfidenceThreshold < 0 || c.HighConfidenceThreshold > 1 {
		return fmt.Errorf("%w: high_confidence_threshold %v must be in [0, 1]",
			common.ErrInvalidConfig, c.HighConfidenceThreshold)
	}
	if c.HighConfidenceThreshold < c.ConfidenceThreshold {
		return fmt.Errorf("%w: high_confidence_threshold %v below confidence_threshold %v",
			common.ErrInvalidConfig, c.HighConfidenceThreshold, c.ConfidenceThreshold)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database path is empty", common.ErrInvalidConfig)
	}
	if c.DefaultCategory == "" {
		return fmt.Errorf("%w: default category is empty", common.ErrInvalidConfig)
	}
	return nil
}
