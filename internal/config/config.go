package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// LLMConfig contains the language-model integration settings.
// Provider selects the backend: "openai" speaks the Chat Completions
// protocol (any compatible endpoint via BaseURL), "gemini" uses the
// Google Gemini API.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=openai gemini"`
	APIKey   string `mapstructure:"api_key" validate:"required"`
	Model    string `mapstructure:"model" validate:"required"`

	// BaseURL overrides the OpenAI endpoint for compatible providers.
	// Ignored by the gemini backend.
	BaseURL string `mapstructure:"base_url"`

	// RequestTimeout bounds one generation round trip.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// TaskConfig contains the task registry settings.
type TaskConfig struct {
	// MaxTasks caps how many tasks the registry tracks at once.
	MaxTasks int `mapstructure:"max_tasks" validate:"gt=0"`

	// Timeout is how long a task may stay running before the sweeper
	// forces it to failed.
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Retention is how long finished tasks stay pollable.
	Retention time.Duration `mapstructure:"retention"`

	// SweepInterval is how often the sweeper checks for stuck tasks.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}
