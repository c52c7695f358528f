package internal

import (
	"errors"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/unitconv/internal/history"
)

// DefaultHistoryPath is the history file used when none is configured,
// relative to the working directory.
const DefaultHistoryPath = "conversion.json"

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	History HistoryConfig     `yaml:"history"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	return c.History.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.Min(slog.LevelDebug), validation.Max(slog.LevelError)),
	)
}

// HistoryConfig locates the conversion history file.
type HistoryConfig struct {
	Path         string `yaml:"path"`
	BackupSuffix string `yaml:"backup_suffix"`
}

// Validate validates the history configuration.
func (c *HistoryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.BackupSuffix, validation.Required, validation.By(noSeparator)),
	)
}

func noSeparator(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) {
		return errors.New("must not contain a path separator")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelError,
		},
		History: HistoryConfig{
			Path:         DefaultHistoryPath,
			BackupSuffix: history.DefaultBackupSuffix,
		},
	}
}
