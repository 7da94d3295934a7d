package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL      string        `mapstructure:"API_BASE_URL"`
	Env             string        `mapstructure:"ENV"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	HTTPTimeout     time.Duration `mapstructure:"HTTP_TIMEOUT"`
	DisplayTimezone string        `mapstructure:"DISPLAY_TIMEZONE"`
	SandboxPort     string        `mapstructure:"SANDBOX_PORT"`
	SandboxSeed     bool          `mapstructure:"SANDBOX_SEED"`
	OTELEndpoint    string        `mapstructure:"OTEL_ENDPOINT"`
	ServiceName     string        `mapstructure:"SERVICE_NAME"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("API_BASE_URL", "http://127.0.0.1:8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_TIMEOUT", "0s") // 0 leaves the transport default in place
	v.SetDefault("DISPLAY_TIMEZONE", "Local")
	v.SetDefault("SANDBOX_PORT", "8000")
	v.SetDefault("SANDBOX_SEED", true)
	v.SetDefault("SERVICE_NAME", "clinic-console")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("API_BASE_URL")
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("HTTP_TIMEOUT")
	v.BindEnv("DISPLAY_TIMEZONE")
	v.BindEnv("SANDBOX_PORT")
	v.BindEnv("SANDBOX_SEED")
	v.BindEnv("OTEL_ENDPOINT")
	v.BindEnv("SERVICE_NAME")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Level returns the parsed LOG_LEVEL, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Validate checks that the API base URL is absolute and the log level and
// timezone are understood.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("API_BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL, got %q", c.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("API_BASE_URL must include a host, got %q", c.APIBaseURL)
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.LogLevel)
		}
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative, got %s", c.HTTPTimeout)
	}
	if tz := c.DisplayTimezone; tz != "" && tz != "Local" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("DISPLAY_TIMEZONE %q: %w", tz, err)
		}
	}
	return nil
}
