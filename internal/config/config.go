// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// CalendarConfig holds grid settings.
type CalendarConfig struct {
	WeekStart   string `toml:"week_start"`   // e.g., "saturday", "shanbe" or "شنبه"
	Capacity    int    `toml:"capacity"`     // events per month cell before "+N more"
	Lenient     bool   `toml:"lenient"`      // fall back to defaults on bad values
	Numerals    string `toml:"numerals"`     // "persian" or "latin"
	DefaultView string `toml:"default_view"` // "month", "week" or "day"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			WeekStart:   "saturday",
			Capacity:    grid.DefaultCapacity,
			Numerals:    "persian",
			DefaultView: "month",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taqvim.db"
	}
	return filepath.Join(home, ".local", "share", "taqvim", "taqvim.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "taqvim", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, loads a .env
// file from the working directory, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// .env never overrides variables already set in the environment.
	_ = godotenv.Load()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TAQVIM_WEEK_START"); v != "" {
		cfg.Calendar.WeekStart = v
	}
	if v := os.Getenv("TAQVIM_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TAQVIM_CAPACITY must be an integer, got %q", v)
		}
		cfg.Calendar.Capacity = n
	}
	if v := os.Getenv("TAQVIM_LENIENT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TAQVIM_LENIENT must be a boolean, got %q", v)
		}
		cfg.Calendar.Lenient = b
	}
	if v := os.Getenv("TAQVIM_NUMERALS"); v != "" {
		cfg.Calendar.Numerals = v
	}
	if v := os.Getenv("TAQVIM_DEFAULT_VIEW"); v != "" {
		cfg.Calendar.DefaultView = v
	}

	if v := os.Getenv("TAQVIM_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("TAQVIM_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid. With lenient set, a bad
// week start or capacity is left for the grid engine to replace.
func (c *Config) Validate() error {
	if !c.Calendar.Lenient {
		if _, err := jalali.ParseWeekday(c.Calendar.WeekStart); err != nil {
			return fmt.Errorf("week_start: %w", err)
		}
		if c.Calendar.Capacity <= 0 {
			return fmt.Errorf("capacity must be positive, got %d", c.Calendar.Capacity)
		}
	}
	if _, err := jalali.ParseNumerals(c.Calendar.Numerals); err != nil {
		return fmt.Errorf("numerals: %w", err)
	}
	if _, err := grid.ParseMode(c.Calendar.DefaultView); err != nil {
		return fmt.Errorf("default_view: %w", err)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// GridOptions converts the calendar section to engine options. In lenient
// mode an unparseable week start is passed through as an invalid ordinal so
// the engine substitutes its default.
func (c *Config) GridOptions() grid.Options {
	ws, err := jalali.ParseWeekday(c.Calendar.WeekStart)
	if err != nil {
		ws = jalali.Weekday(-1)
	}
	return grid.Options{
		WeekStart:            ws,
		Capacity:             c.Calendar.Capacity,
		UseDefaultsOnInvalid: c.Calendar.Lenient,
	}
}

// Numerals returns the configured digit style, Persian when unset.
func (c *Config) Numerals() jalali.Numerals {
	n, err := jalali.ParseNumerals(c.Calendar.Numerals)
	if err != nil {
		return jalali.PersianDigits
	}
	return n
}

// View returns the configured default view.
func (c *Config) View() grid.Mode {
	m, err := grid.ParseMode(c.Calendar.DefaultView)
	if err != nil {
		return grid.ModeMonth
	}
	return m
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
