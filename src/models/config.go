package models

// MConfig Structure
type MConfig struct {
	Name     string         `yaml:"name"`
	LogLevel string         `yaml:"log_level"`
	API      MAPIConfig     `yaml:"api"`
	Push     MPushConfig    `yaml:"push"`
	Storage  MStorageConfig `yaml:"storage"`
	Refresh  MRefreshConfig `yaml:"refresh"`
	Console  MConsoleConfig `yaml:"console"`
}

type MAPIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type MPushConfig struct {
	ReconnectBaseMs int     `yaml:"reconnect_base_ms"`
	ReconnectMaxMs  int     `yaml:"reconnect_max_ms"`
	Jitter          float64 `yaml:"jitter"`
	MaxAttempts     int     `yaml:"max_attempts"` // 0 means retry forever
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MRefreshConfig struct {
	IntervalSeconds int    `yaml:"interval_seconds"`
	MarketHoursOnly bool   `yaml:"market_hours_only"`
	CalendarMIC     string `yaml:"calendar_mic"`
}

type MConsoleConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}
