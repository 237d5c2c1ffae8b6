package config

import "time"

// APIConfig contains backend connection settings
type APIConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
	Token   string        `yaml:"token"`
}

// CacheConfig contains response cache settings
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl" validate:"gte=0"`
	Dir     string        `yaml:"dir"`
}

// StationsConfig contains station picker settings
type StationsConfig struct {
	// File is an optional local JSON station list used next to (or instead of) the API.
	File  string `yaml:"file"`
	Watch bool   `yaml:"watch"`
	Limit int    `yaml:"limit" validate:"gte=1,lte=50"`
	// Offline skips the API and uses the file or the builtin catalogue.
	Offline bool `yaml:"offline"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `yaml:"file"`
}

// Config is the root configuration structure
type Config struct {
	API      APIConfig      `yaml:"api" validate:"required"`
	Cache    CacheConfig    `yaml:"cache"`
	Stations StationsConfig `yaml:"stations"`
	Log      LogConfig      `yaml:"log"`
}
