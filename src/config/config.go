package config

import (
	"fmt"
	"net/url"
	"os"

	"risk-console/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 10
	}
	if c.Push.ReconnectBaseMs == 0 {
		c.Push.ReconnectBaseMs = 2000
	}
	if c.Push.ReconnectMaxMs == 0 {
		c.Push.ReconnectMaxMs = 30000
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "sqlite"
	}
	if c.Refresh.IntervalSeconds == 0 {
		c.Refresh.IntervalSeconds = 30
	}
	if c.Refresh.CalendarMIC == "" {
		c.Refresh.CalendarMIC = "xnys"
	}
	if c.Console.Host == "" {
		c.Console.Host = "127.0.0.1"
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate API configuration
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url cannot be empty")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api base_url '%s' is not a valid URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api base_url scheme must be http or https, got '%s'", u.Scheme)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api timeout must be greater than 0")
	}

	// Validate Push configuration
	if c.Push.ReconnectBaseMs <= 0 {
		return fmt.Errorf("push reconnect base delay must be greater than 0")
	}
	if c.Push.ReconnectMaxMs < c.Push.ReconnectBaseMs {
		return fmt.Errorf("push reconnect max delay must be >= base delay")
	}
	if c.Push.Jitter < 0 || c.Push.Jitter > 1 {
		return fmt.Errorf("push jitter must be between 0 and 1")
	}
	if c.Push.MaxAttempts < 0 {
		return fmt.Errorf("push max attempts cannot be negative")
	}

	// Validate Storage configuration
	switch c.Storage.DBType {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	default:
		return fmt.Errorf("unknown db_type '%s' (want sqlite|postgres)", c.Storage.DBType)
	}

	// Validate Refresh configuration
	if c.Refresh.IntervalSeconds <= 0 {
		return fmt.Errorf("refresh interval must be greater than 0")
	}

	// Validate Console configuration
	if c.Console.Port <= 1024 || c.Console.Port > 65535 {
		return fmt.Errorf("invalid console port number: %d (must be between 1025 and 65535)", c.Console.Port)
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
