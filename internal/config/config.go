package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all kiosk configuration
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	UI      UIConfig      `mapstructure:"ui"`
	Data    DataConfig    `mapstructure:"data"`
	Session SessionConfig `mapstructure:"session"`
}

type GeneralConfig struct {
	DefaultContentType string `mapstructure:"default_content_type"`
	PageSize           int    `mapstructure:"page_size"`
	IdleResetSeconds   int    `mapstructure:"idle_reset_seconds"`
}

type UIConfig struct {
	Theme        string `mapstructure:"theme"`
	MouseEnabled bool   `mapstructure:"mouse_enabled"`
	MotionTier   string `mapstructure:"motion_tier"` // "full", "reduced", "static"
}

type DataConfig struct {
	Dir                  string `mapstructure:"dir"`
	MaxCellDisplayLength int    `mapstructure:"max_cell_display_length"`
}

type SessionConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	DBPath      string `mapstructure:"db_path"`
	MaxAgeHours int    `mapstructure:"max_age_hours"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		General: GeneralConfig{
			DefaultContentType: "alumni",
			PageSize:           25,
			IdleResetSeconds:   120,
		},
		UI: UIConfig{
			Theme:        "default",
			MouseEnabled: false,
			MotionTier:   "full",
		},
		Data: DataConfig{
			Dir:                  "./data",
			MaxCellDisplayLength: 60,
		},
		Session: SessionConfig{
			Enabled:     true,
			DBPath:      "",
			MaxAgeHours: 24,
		},
	}
}

// Load loads configuration from files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config paths in priority order
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "musekiosk"))
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("general.default_content_type", "alumni")
	v.SetDefault("general.page_size", 25)
	v.SetDefault("general.idle_reset_seconds", 120)
	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.mouse_enabled", false)
	v.SetDefault("ui.motion_tier", "full")
	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.max_cell_display_length", 60)
	v.SetDefault("session.enabled", true)
	v.SetDefault("session.db_path", "")
	v.SetDefault("session.max_age_hours", 24)

	// A missing config file is fine, the defaults carry the kiosk.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "musekiosk"), nil
}

// SessionDBPath resolves the session database location, defaulting to the
// user config directory when not set explicitly.
func (c *Config) SessionDBPath() (string, error) {
	if c.Session.DBPath != "" {
		return c.Session.DBPath, nil
	}
	dir, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return filepath.Join(dir, "session.db"), nil
}
