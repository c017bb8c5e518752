// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct. It is built once at
// startup and passed into constructors; request handling never reads it from
// ambient global state.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Directory  DirectoryConfig  `mapstructure:"directory"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	Assistant  AssistantConfig  `mapstructure:"assistant"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the inbound webhook listener settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	WebhookSecret   string        `mapstructure:"webhook_secret"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DirectoryConfig holds Directory Service settings. DefaultCompany scopes
// lookups when the caller does not name a company.
type DirectoryConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	DefaultCompany string        `mapstructure:"default_company"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// SchedulingConfig holds Scheduling Service settings.
type SchedulingConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AssistantConfig feeds the static assistant manifest.
type AssistantConfig struct {
	FirstMessage   string `mapstructure:"first_message"`
	ModelProvider  string `mapstructure:"model_provider"`
	ModelName      string `mapstructure:"model_name"`
	TransferNumber string `mapstructure:"transfer_number"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "jari-backend"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Directory.Timeout <= 0 {
		cfg.Directory.Timeout = 15 * time.Second
	}
	if cfg.Scheduling.Timeout <= 0 {
		cfg.Scheduling.Timeout = 15 * time.Second
	}
	if cfg.Assistant.ModelProvider == "" {
		cfg.Assistant.ModelProvider = "openai"
	}
	if cfg.Assistant.ModelName == "" {
		cfg.Assistant.ModelName = "gpt-3.5-turbo"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.WebhookSecret == "" {
		return fmt.Errorf("server.webhook_secret is required")
	}
	if cfg.Directory.BaseURL == "" {
		return fmt.Errorf("directory.base_url is required")
	}
	if cfg.Directory.DefaultCompany == "" {
		return fmt.Errorf("directory.default_company is required")
	}
	if cfg.Scheduling.BaseURL == "" {
		return fmt.Errorf("scheduling.base_url is required")
	}
	if cfg.Assistant.TransferNumber == "" {
		return fmt.Errorf("assistant.transfer_number is required")
	}
	return nil
}
