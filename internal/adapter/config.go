package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SourceType identifies the account data backend
type SourceType string

const (
	SourceTypeHTTP    SourceType = "http"
	SourceTypeFixture SourceType = "fixture"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Fixture FixtureConfig `mapstructure:"fixture"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the account API connection
type APIConfig struct {
	Source  SourceType    `mapstructure:"source"` // "http" or "fixture"
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FixtureConfig tunes the built-in demo backend
type FixtureConfig struct {
	Premium   bool `mapstructure:"premium"`
	FailFirst int  `mapstructure:"fail_first"` // leading failures per client
	Offline   bool `mapstructure:"offline"`
}

// CacheConfig holds friends cache configuration
type CacheConfig struct {
	Dir        string `mapstructure:"dir"`
	MemoryOnly bool   `mapstructure:"memory_only"`
}

// MetricsConfig holds the metrics endpoint; an empty Addr disables it
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Source:  SourceTypeFixture,
			Timeout: 15 * time.Second,
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		UI: UIConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "purse", "purse.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "purse", "purse.log")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "purse")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "purse")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "purse", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "purse", "cache")
	}
}

// newViper builds a viper instance seeded with the defaults so that
// environment overrides apply to every known key.
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("api.source", string(def.API.Source))
	v.SetDefault("api.url", def.API.URL)
	v.SetDefault("api.token", def.API.Token)
	v.SetDefault("api.timeout", def.API.Timeout)
	v.SetDefault("fixture.premium", def.Fixture.Premium)
	v.SetDefault("fixture.fail_first", def.Fixture.FailFirst)
	v.SetDefault("fixture.offline", def.Fixture.Offline)
	v.SetDefault("cache.dir", def.Cache.Dir)
	v.SetDefault("cache.memory_only", def.Cache.MemoryOnly)
	v.SetDefault("metrics.addr", def.Metrics.Addr)
	v.SetDefault("ui.theme", def.UI.Theme)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("PURSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from path, or from config.yaml in the
// default config directory and the working directory when path is empty.
// Environment variables such as PURSE_API_TOKEN override file values.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail later at startup
func (c *Config) Validate() error {
	switch c.API.Source {
	case SourceTypeFixture:
	case SourceTypeHTTP:
		if c.API.URL == "" {
			return fmt.Errorf("api.url is required for the %s source", c.API.Source)
		}
	default:
		return fmt.Errorf("unknown api source: %q", c.API.Source)
	}
	if c.Fixture.FailFirst < 0 {
		return fmt.Errorf("fixture.fail_first must not be negative")
	}
	return nil
}

// SaveConfig writes cfg as YAML to path, or to the default location when
// path is empty.
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(DefaultConfigDir(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set fields individually to keep snake_case key names
	v.Set("api.source", string(cfg.API.Source))
	v.Set("api.url", cfg.API.URL)
	v.Set("api.token", cfg.API.Token)
	v.Set("api.timeout", cfg.API.Timeout.String())

	v.Set("fixture.premium", cfg.Fixture.Premium)
	v.Set("fixture.fail_first", cfg.Fixture.FailFirst)
	v.Set("fixture.offline", cfg.Fixture.Offline)

	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.memory_only", cfg.Cache.MemoryOnly)

	v.Set("metrics.addr", cfg.Metrics.Addr)
	v.Set("ui.theme", cfg.UI.Theme)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// CacheDir returns the directory for the persistent friends cache, or ""
// when the cache should live in memory only.
func (c *Config) CacheDir() string {
	if c.Cache.MemoryOnly {
		return ""
	}
	return expandHome(c.Cache.Dir)
}

// ClearCache removes all cached data
func (c *Config) ClearCache() error {
	dir := c.CacheDir()
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
