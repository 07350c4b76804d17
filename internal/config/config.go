package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Grid     GridConfig
	History  HistoryConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path           string `mapstructure:"path"`
	MigrationsPath string `mapstructure:"migrations_path"`
	Table          string `mapstructure:"table"`
	RowLimit       int    `mapstructure:"row_limit"`
}

// GridConfig holds editor behaviour settings.
type GridConfig struct {
	CaseSensitiveFilters bool   `mapstructure:"case_sensitive_filters"`
	ConfirmDestructive   bool   `mapstructure:"confirm_destructive"`
	MaxColumnWidth       int    `mapstructure:"max_column_width"`
	NullDisplay          string `mapstructure:"null_display"`
}

// HistoryConfig holds statement-history settings.
type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

// Load reads configuration from file and env. Env var overrides use prefix GRIDBASE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "gridbase", "gridbase.db"))
	v.SetDefault("database.migrations_path", "")
	v.SetDefault("database.table", "")
	v.SetDefault("database.row_limit", 5000)
	v.SetDefault("grid.case_sensitive_filters", false)
	v.SetDefault("grid.confirm_destructive", true)
	v.SetDefault("grid.max_column_width", 32)
	v.SetDefault("grid.null_display", "NULL")
	v.SetDefault("history.limit", 200)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GRIDBASE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "gridbase"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GRIDBASE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory
// if needed. Used for persisting preferences changed inside the TUI.
func Save(cfg Config) error {
	path := os.Getenv("GRIDBASE_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "gridbase", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations_path", cfg.Database.MigrationsPath)
	v.Set("database.table", cfg.Database.Table)
	v.Set("database.row_limit", cfg.Database.RowLimit)
	v.Set("grid.case_sensitive_filters", cfg.Grid.CaseSensitiveFilters)
	v.Set("grid.confirm_destructive", cfg.Grid.ConfirmDestructive)
	v.Set("grid.max_column_width", cfg.Grid.MaxColumnWidth)
	v.Set("grid.null_display", cfg.Grid.NullDisplay)
	v.Set("history.limit", cfg.History.Limit)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
