// Package config provides configuration management for the iyzipay tools
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

// Config holds all configuration for the iyzipay CLI and sandbox
type Config struct {
	Client  ClientConfig  `yaml:"client" mapstructure:"client"`
	Sandbox SandboxConfig `yaml:"sandbox" mapstructure:"sandbox"`
	Journal JournalConfig `yaml:"journal" mapstructure:"journal"`
}

// ClientConfig holds API client configuration
type ClientConfig struct {
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey    string        `yaml:"api_key" mapstructure:"api_key"`
	SecretKey string        `yaml:"secret_key" mapstructure:"secret_key"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Locale    string        `yaml:"locale" mapstructure:"locale"`
}

// SandboxConfig holds the local sandbox server configuration
type SandboxConfig struct {
	Port         string        `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	APIKey       string        `yaml:"api_key" mapstructure:"api_key"`
	SecretKey    string        `yaml:"secret_key" mapstructure:"secret_key"`
}

// MarshalYAML writes the timeout as a duration string such as "14s".
func (c ClientConfig) MarshalYAML() (interface{}, error) {
	return struct {
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
		SecretKey string `yaml:"secret_key"`
		Timeout   string `yaml:"timeout"`
		Locale    string `yaml:"locale"`
	}{c.BaseURL, c.APIKey, c.SecretKey, c.Timeout.String(), c.Locale}, nil
}

// MarshalYAML writes the timeouts as duration strings.
func (c SandboxConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Port         string `yaml:"port"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
		APIKey       string `yaml:"api_key"`
		SecretKey    string `yaml:"secret_key"`
	}{c.Port, c.ReadTimeout.String(), c.WriteTimeout.String(), c.APIKey, c.SecretKey}, nil
}

// JournalConfig holds request journal database configuration
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Driver  string `yaml:"driver" mapstructure:"driver"`
	DSN     string `yaml:"dsn" mapstructure:"dsn"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			BaseURL: iyzipay.DefaultBaseURL,
			Timeout: iyzipay.DefaultTimeout,
			Locale:  "tr",
		},
		Sandbox: SandboxConfig{
			Port:         "8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			APIKey:       "sandbox-api-key",
			SecretKey:    "sandbox-secret-key",
		},
		Journal: JournalConfig{
			Driver: "postgres",
			DSN:    "host=localhost dbname=iyzipay sslmode=disable",
		},
	}
}

// DefaultPath returns ~/.iyzipay/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".iyzipay", "config.yaml")
	}
	return filepath.Join(home, ".iyzipay", "config.yaml")
}

// Load builds the configuration from defaults, then the YAML file at path if
// it exists, then IYZIPAY_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func applyEnv(cfg *Config) error {
	cfg.Client.BaseURL = getEnv("IYZIPAY_BASE_URL", cfg.Client.BaseURL)
	cfg.Client.APIKey = getEnv("IYZIPAY_API_KEY", cfg.Client.APIKey)
	cfg.Client.SecretKey = getEnv("IYZIPAY_SECRET_KEY", cfg.Client.SecretKey)
	cfg.Client.Locale = getEnv("IYZIPAY_LOCALE", cfg.Client.Locale)
	if v := os.Getenv("IYZIPAY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid IYZIPAY_TIMEOUT: %w", err)
		}
		cfg.Client.Timeout = d
	}

	cfg.Sandbox.Port = getEnv("IYZIPAY_SANDBOX_PORT", cfg.Sandbox.Port)
	cfg.Sandbox.APIKey = getEnv("IYZIPAY_SANDBOX_API_KEY", cfg.Sandbox.APIKey)
	cfg.Sandbox.SecretKey = getEnv("IYZIPAY_SANDBOX_SECRET_KEY", cfg.Sandbox.SecretKey)

	cfg.Journal.Driver = getEnv("IYZIPAY_JOURNAL_DRIVER", cfg.Journal.Driver)
	if dsn := os.Getenv("IYZIPAY_JOURNAL_DSN"); dsn != "" {
		cfg.Journal.DSN = dsn
		cfg.Journal.Enabled = true
	}
	return nil
}

// Write stores cfg as YAML at path. The file holds credentials, so it is
// only readable by its owner.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
