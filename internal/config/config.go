package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"searchbox/internal/eventbus"
)

// EnvPrefix prefixes every environment override, e.g. SEARCHBOX_REMOTE_BASE_URL.
const EnvPrefix = "SEARCHBOX"

// FileName is the name of the config file inside the user config directory.
const FileName = "searchbox.toml"

// Config represents the application configuration
type Config struct {
	Search  SearchSettings  `mapstructure:"search"`
	Static  StaticSettings  `mapstructure:"static"`
	Remote  RemoteSettings  `mapstructure:"remote"`
	Catalog CatalogSettings `mapstructure:"catalog"`
	Log     LogSettings     `mapstructure:"log"`
}

// SearchSettings configures the search boxes of the demo
type SearchSettings struct {
	Placeholder    string        `mapstructure:"placeholder"`
	Width          int           `mapstructure:"width"`
	QueryThreshold int           `mapstructure:"query_threshold"` // minimum trimmed length before a remote lookup
	Debounce       time.Duration `mapstructure:"debounce"`
}

// StaticSettings holds the list searched by the string suggestion box
type StaticSettings struct {
	Suggestions []string `mapstructure:"suggestions"`
}

// RemoteSettings points the custom layout box at an OData product service
type RemoteSettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CatalogSettings struct {
	Addr string `mapstructure:"addr"`
}

type LogSettings struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// fileConfig is the on-disk shape written by SaveToPath. Durations are
// stored as strings so they read back through viper's duration hook.
type fileConfig struct {
	Search struct {
		Placeholder    string `toml:"placeholder"`
		Width          int    `toml:"width"`
		QueryThreshold int    `toml:"query_threshold"`
		Debounce       string `toml:"debounce"`
	} `toml:"search"`
	Static struct {
		Suggestions []string `toml:"suggestions"`
	} `toml:"static"`
	Remote struct {
		BaseURL string `toml:"base_url"`
		Timeout string `toml:"timeout"`
	} `toml:"remote"`
	Catalog struct {
		Addr string `toml:"addr"`
	} `toml:"catalog"`
	Log struct {
		File  string `toml:"file"`
		Level string `toml:"level"`
	} `toml:"log"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	v        *viper.Viper
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service reading path through v. An empty
// path selects the file in the user config directory; a nil v creates a new one.
func NewConfigService(v *viper.Viper, path string) ConfigService {
	if v == nil {
		v = viper.New()
	}
	if path == "" {
		path = DefaultPath()
	}
	return &configService{v: v, filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(v *viper.Viper, path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(v, path).(*configService)
	cs.bus = bus
	return cs
}

// DefaultPath returns the config file location in the user config directory.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "searchbox", FileName)
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the service's file. A missing file yields the defaults with
// environment and flag overrides applied.
func (cs *configService) Load() (*Config, error) {
	used := cs.filePath
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		log.Debug("config: no file, using defaults", "path", cs.filePath)
		used = ""
	}

	cfg, err := decode(cs.v, used)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: used})
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return decode(viper.New(), path)
}

// SaveToPath writes configuration to a specific path as TOML
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(toFile(config))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}
	return nil
}

// decode layers defaults, the file at path (if any) and SEARCHBOX_ environment
// variables into a validated Config.
func decode(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("search.placeholder", d.Search.Placeholder)
	v.SetDefault("search.width", d.Search.Width)
	v.SetDefault("search.query_threshold", d.Search.QueryThreshold)
	v.SetDefault("search.debounce", d.Search.Debounce)
	v.SetDefault("static.suggestions", d.Static.Suggestions)
	v.SetDefault("remote.base_url", d.Remote.BaseURL)
	v.SetDefault("remote.timeout", d.Remote.Timeout)
	v.SetDefault("catalog.addr", d.Catalog.Addr)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

func toFile(c *Config) fileConfig {
	var f fileConfig
	f.Search.Placeholder = c.Search.Placeholder
	f.Search.Width = c.Search.Width
	f.Search.QueryThreshold = c.Search.QueryThreshold
	f.Search.Debounce = c.Search.Debounce.String()
	f.Static.Suggestions = c.Static.Suggestions
	f.Remote.BaseURL = c.Remote.BaseURL
	f.Remote.Timeout = c.Remote.Timeout.String()
	f.Catalog.Addr = c.Catalog.Addr
	f.Log.File = c.Log.File
	f.Log.Level = c.Log.Level
	return f
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Search.Width <= 0 {
		return fmt.Errorf("search.width must be positive, got %d", c.Search.Width)
	}
	if c.Search.QueryThreshold <= 0 {
		return fmt.Errorf("search.query_threshold must be positive, got %d", c.Search.QueryThreshold)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative, got %s", c.Search.Debounce)
	}
	if c.Remote.Timeout < 0 {
		return fmt.Errorf("remote.timeout must not be negative, got %s", c.Remote.Timeout)
	}
	u, err := url.Parse(c.Remote.BaseURL)
	if err != nil {
		return fmt.Errorf("remote.base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("remote.base_url must be an http(s) URL, got %q", c.Remote.BaseURL)
	}
	if c.Catalog.Addr == "" {
		return errors.New("catalog.addr must not be empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Search: SearchSettings{
			Placeholder:    "Search",
			Width:          48,
			QueryThreshold: 3,
			Debounce:       500 * time.Millisecond,
		},
		Static: StaticSettings{
			Suggestions: []string{
				"Iron Man",
				"Captain America",
				"Thor",
				"Hulk",
				"Black Widow",
				"Hawkeye",
				"Black Panther",
				"Ant Man",
				"Spiderman",
			},
		},
		Remote: RemoteSettings{
			BaseURL: "https://services.odata.org/V3/OData/OData.svc",
			Timeout: 10 * time.Second,
		},
		Catalog: CatalogSettings{
			Addr: "127.0.0.1:8642",
		},
		Log: LogSettings{
			File:  "searchbox.log",
			Level: "info",
		},
	}
}
