package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	Env                   string        `mapstructure:"app_env"`
	LogLevel              string        `mapstructure:"log_level"`
	APIBaseURL            string        `mapstructure:"api_base_url"`
	AuthToken             string        `mapstructure:"auth_token"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	ProductID             int           `mapstructure:"product_id"`
	PublishersFile        string        `mapstructure:"publishers_file"`

	SnapshotType            string        `mapstructure:"snapshot_type"`
	BBoltPath               string        `mapstructure:"bbolt_path"`
	SnapshotTTLSeconds      int64         `mapstructure:"snapshot_ttl_seconds"`
	SnapshotCleanupSeconds  int64         `mapstructure:"snapshot_cleanup_interval_seconds"`
	SnapshotTTL             time.Duration `mapstructure:"-"`
	SnapshotCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "produto-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "https://suaapi.com/produto")
	v.SetDefault("auth_token", "SeuTokenDeAutorizacaoAqui")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("product_id", 1)
	v.SetDefault("publishers_file", "")
	v.SetDefault("snapshot_type", "none")
	v.SetDefault("bbolt_path", "./data/catalog.db")
	v.SetDefault("snapshot_ttl_seconds", int64((5*24*time.Hour)/time.Second))
	v.SetDefault("snapshot_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q (must be an absolute http(s) url)", c.APIBaseURL)
	}

	c.AuthToken = strings.TrimSpace(c.AuthToken)

	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second

	if c.SnapshotTTLSeconds <= 0 {
		return fmt.Errorf("invalid snapshot_ttl_seconds (must be positive seconds)")
	}
	if c.SnapshotCleanupSeconds <= 0 {
		return fmt.Errorf("invalid snapshot_cleanup_interval_seconds (must be positive seconds)")
	}
	c.SnapshotTTL = time.Duration(c.SnapshotTTLSeconds) * time.Second
	c.SnapshotCleanupInterval = time.Duration(c.SnapshotCleanupSeconds) * time.Second

	return nil
}

// Redacted returns a copy that is safe to log.
func (c Config) Redacted() Config {
	if c.AuthToken != "" {
		c.AuthToken = "***"
	}
	return c
}
