// Package config provides reading and writing of rain configuration.
// Supports both global (~/.rain/config.yaml) and local (.rain/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: goes back to wherever the config was read from.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.rain/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is theme-specific config in .rain/config.yaml
	ScopeLocal
)

// Datasource kinds accepted by theme.datasource.
const (
	DatasourceFile = "file"
	DatasourceDB   = "db"
	DatasourceAuto = "auto"
)

// Author represents the author recorded in the audit log.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Theme selects where templates live and how they are stored.
type Theme struct {
	Path       string `yaml:"path,omitempty"`
	Datasource string `yaml:"datasource,omitempty"`
	DB         string `yaml:"db,omitempty"`
	Watch      *bool  `yaml:"watch,omitempty"`
}

// Halcyon holds template rendering options.
type Halcyon struct {
	BareCode *bool `yaml:"bare_code,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxPath    *int   `yaml:"max_path,omitempty"`
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultThemePath  = "."
	DefaultDatasource = DatasourceFile
	DefaultMaxPath    = 255
	DefaultMaxContent = 10 * 1024 * 1024 // 10 MB
)

// DefaultDBPath is the SQLite template store, relative to the theme path.
var DefaultDBPath = filepath.Join(".rain", "rain.db")

// Validation bounds for configuration values.
const (
	MinMaxPath    = 1
	MaxMaxPath    = 4096
	MinMaxContent = 1
	MaxMaxContent = 1024 * 1024 * 1024 // 1 GB
)

// Config contains configuration for rain.
type Config struct {
	Author  Author  `yaml:"author,omitempty"`
	Theme   Theme   `yaml:"theme,omitempty"`
	Halcyon Halcyon `yaml:"halcyon,omitempty"`
	Limits  Limits  `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	switch c.Theme.Datasource {
	case "", DatasourceFile, DatasourceDB, DatasourceAuto:
	default:
		return fmt.Errorf("%w: theme.datasource must be file, db or auto, got %q",
			ErrInvalidValue, c.Theme.Datasource)
	}
	if c.Limits.MaxPath != nil {
		v := *c.Limits.MaxPath
		if v < MinMaxPath || v > MaxMaxPath {
			return fmt.Errorf("%w: max_path must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxPath, MaxMaxPath, v)
		}
	}
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	return nil
}

// ThemePath returns the theme directory. RAIN_THEME overrides the file.
func (c *Config) ThemePath() string {
	if v := os.Getenv("RAIN_THEME"); v != "" {
		return v
	}
	if c.Theme.Path == "" {
		return DefaultThemePath
	}
	return c.Theme.Path
}

// Datasource returns the configured datasource kind. RAIN_DATASOURCE
// overrides the file.
func (c *Config) Datasource() string {
	if v := os.Getenv("RAIN_DATASOURCE"); v != "" {
		return v
	}
	if c.Theme.Datasource == "" {
		return DefaultDatasource
	}
	return c.Theme.Datasource
}

// DBPath returns the SQLite template store path. Relative paths are
// resolved against the theme path.
func (c *Config) DBPath() string {
	p := c.Theme.DB
	if p == "" {
		p = DefaultDBPath
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ThemePath(), p)
}

// Watch returns whether the template cache follows filesystem changes
// (defaults to false).
func (c *Config) Watch() bool {
	return c.Theme.Watch != nil && *c.Theme.Watch
}

// BareCode returns whether code sections are rendered without PHP tags
// (defaults to false).
func (c *Config) BareCode() bool {
	return c.Halcyon.BareCode != nil && *c.Halcyon.BareCode
}

// MaxPath returns the maximum template path length in bytes (defaults to 255).
func (c *Config) MaxPath() int {
	if c.Limits.MaxPath == nil {
		return DefaultMaxPath
	}
	return *c.Limits.MaxPath
}

// MaxContent returns the maximum template size in bytes (defaults to 10 MB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// LocalPath returns the path to the local (theme) config file.
func LocalPath() string {
	return filepath.Join(".rain", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.rain/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rain", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	return loadPath(path, scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// ScopeName returns "local" or "global".
func (c *Config) ScopeName() string {
	if c.scope == ScopeLocal {
		return "local"
	}
	return "global"
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
