package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from .env files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	GinMode  string `mapstructure:"gin_mode"`

	Port                   int           `mapstructure:"port"`
	MediastackAPIKey       string        `mapstructure:"mediastack_api_key"`
	UpstreamBaseURL        string        `mapstructure:"upstream_base_url"`
	UpstreamTimeoutSeconds int64         `mapstructure:"upstream_timeout_seconds"`
	UpstreamTimeout        time.Duration `mapstructure:"-"`

	CatalogFile string `mapstructure:"catalog_file"`

	JournalType            string        `mapstructure:"journal_type"`
	JournalPath            string        `mapstructure:"journal_path"`
	JournalTTLSeconds      int64         `mapstructure:"journal_ttl_seconds"`
	JournalCleanupSeconds  int64         `mapstructure:"journal_cleanup_interval_seconds"`
	JournalTTL             time.Duration `mapstructure:"-"`
	JournalCleanupInterval time.Duration `mapstructure:"-"`

	WebPort            int           `mapstructure:"web_port"`
	ProxyURL           string        `mapstructure:"proxy_url"`
	SessionIdleSeconds int64         `mapstructure:"session_idle_seconds"`
	SessionIdle        time.Duration `mapstructure:"-"`
}

// DefaultUpstreamBaseURL is the news endpoint of the upstream API.
const DefaultUpstreamBaseURL = "http://api.mediastack.com/v1/news"

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("app_name", "khobor")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("port", 3000)
	v.SetDefault("mediastack_api_key", "")
	v.SetDefault("upstream_base_url", DefaultUpstreamBaseURL)
	v.SetDefault("upstream_timeout_seconds", 0) // client default, no deadline
	v.SetDefault("catalog_file", "")
	v.SetDefault("journal_type", "none")
	v.SetDefault("journal_path", "./data/journal.db")
	v.SetDefault("journal_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("journal_cleanup_interval_seconds", int64(time.Hour/time.Second))
	v.SetDefault("web_port", 8080)
	v.SetDefault("proxy_url", "http://localhost:3000")
	v.SetDefault("session_idle_seconds", int64((30*time.Minute)/time.Second))

	v.AutomaticEnv()
	// the original deployment spelled the key variable MEDIACSTACK_API_KEY
	if err := v.BindEnv("mediastack_api_key", "MEDIASTACK_API_KEY", "MEDIACSTACK_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.MediastackAPIKey = strings.TrimSpace(c.MediastackAPIKey)
	c.UpstreamBaseURL = strings.TrimSpace(c.UpstreamBaseURL)
	c.ProxyURL = strings.TrimRight(strings.TrimSpace(c.ProxyURL), "/")

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.WebPort <= 0 || c.WebPort > 65535 {
		return fmt.Errorf("invalid web_port %d", c.WebPort)
	}
	if c.UpstreamBaseURL == "" {
		return fmt.Errorf("upstream_base_url must not be empty")
	}
	if c.UpstreamTimeoutSeconds < 0 {
		return fmt.Errorf("invalid upstream_timeout_seconds (must be zero or positive seconds)")
	}
	c.UpstreamTimeout = time.Duration(c.UpstreamTimeoutSeconds) * time.Second

	if c.JournalTTLSeconds <= 0 {
		return fmt.Errorf("invalid journal_ttl_seconds (must be positive seconds)")
	}
	if c.JournalCleanupSeconds <= 0 {
		return fmt.Errorf("invalid journal_cleanup_interval_seconds (must be positive seconds)")
	}
	c.JournalTTL = time.Duration(c.JournalTTLSeconds) * time.Second
	c.JournalCleanupInterval = time.Duration(c.JournalCleanupSeconds) * time.Second

	if c.SessionIdleSeconds <= 0 {
		return fmt.Errorf("invalid session_idle_seconds (must be positive seconds)")
	}
	c.SessionIdle = time.Duration(c.SessionIdleSeconds) * time.Second

	return nil
}

// Redacted returns a copy that is safe to log.
func (c Config) Redacted() Config {
	if c.MediastackAPIKey != "" {
		c.MediastackAPIKey = "***"
	}
	return c
}
