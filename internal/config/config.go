// Package config loads and validates application configuration from
// environment variables and an optional config file.
package config

import "time"

// Config holds all application configuration, organized into logical
// groups.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Study    StudyConfig    `mapstructure:"study"`
	Sync     SyncConfig     `mapstructure:"sync"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the embedded database settings.
type DatabaseConfig struct {
	// Path is the SQLite database file; ":memory:" for ephemeral runs.
	Path string `mapstructure:"path" validate:"required"`
}

// StudyConfig contains the session tuning knobs. The daily-selection
// minimum size and scoring constants are design constants, not config.
type StudyConfig struct {
	DailyLength    int `mapstructure:"daily_length"    validate:"required,gt=0"`
	PracticeLength int `mapstructure:"practice_length" validate:"required,gt=0"`
	OptionCount    int `mapstructure:"option_count"    validate:"required,gt=1"`
}

// SyncConfig contains the background sync-event flusher settings.
type SyncConfig struct {
	FlushInterval time.Duration `mapstructure:"flush_interval" validate:"required"`
	BatchSize     int           `mapstructure:"batch_size"     validate:"required,gt=0"`
}
