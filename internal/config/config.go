// Package config loads server settings from the environment and an optional
// YAML file using Viper.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileEnv names the environment variable holding an optional config file path.
const ConfigFileEnv = "SETTLEUP_CONFIG"

type ServerConfig struct {
	Port           int      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	// StaticPath is the directory served for non-RPC routes. Empty disables it.
	StaticPath      string        `mapstructure:"STATIC_PATH" yaml:"static_path"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"PATH" yaml:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"LEVEL" yaml:"level"`
}

// Config is the complete server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"SERVER" yaml:"server"`
	Database DatabaseConfig `mapstructure:"DATABASE" yaml:"database"`
	Log      LogConfig      `mapstructure:"LOG" yaml:"log"`
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// Load reads defaults, then the file named by SETTLEUP_CONFIG (if any), then
// environment variables, and validates the result.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER.PORT", 8080)
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.STATIC_PATH", "")
	v.SetDefault("SERVER.SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DATABASE.PATH", "./data/settleup.db")
	v.SetDefault("LOG.LEVEL", "info")

	envBindings := [][2]string{
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.STATIC_PATH", "STATIC_PATH"},
		{"SERVER.SHUTDOWN_TIMEOUT", "SHUTDOWN_TIMEOUT"},
		{"DATABASE.PATH", "DB_PATH"},
		{"LOG.LEVEL", "LOG_LEVEL"},
		{"CONFIG_FILE", ConfigFileEnv},
	}
	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	slog.Debug("Configuration loaded",
		"port", cfg.Server.Port,
		"db_path", cfg.Database.Path,
		"static_path", cfg.Server.StaticPath,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"log_level", cfg.Log.Level,
	)
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive: %s", cfg.Server.ShutdownTimeout)
	}
	if strings.TrimSpace(cfg.Database.Path) == "" {
		return fmt.Errorf("database path is required")
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level: %q", cfg.Log.Level)
	}

	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}
	return nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
