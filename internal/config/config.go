// Package config provides reading and writing of sift configuration.
// Supports both global (~/.sift/config.yaml) and local (.sift/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jpl-au/sift/internal/sqlq"
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
	// ScopeGlobal is user-wide config in ~/.sift/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .sift/config.yaml
	ScopeLocal
	// ScopeFile is a config file named explicitly with --config
	ScopeFile
)

// Dir is the name of the sift directory in the project and home directory.
const Dir = ".sift"

// Database holds connection settings.
type Database struct {
	Driver string `yaml:"driver,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

// Search holds pagination settings.
type Search struct {
	Limit    *int `yaml:"limit,omitempty"`
	MaxLimit *int `yaml:"max_limit,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultDriver   = "sqlite"
	DefaultLimit    = 20
	DefaultMaxLimit = 1000
	DefaultKey      = "id"
)

// Validation bounds for configuration values.
const (
	MinLimit    = 1
	MaxMaxLimit = 100000
)

// Config contains configuration for sift.
type Config struct {
	Database Database          `yaml:"database,omitempty"`
	Search   Search            `yaml:"search,omitempty"`
	Entities map[string]Entity `yaml:"entities,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Entity definitions are checked when the catalog normalises them.
func (c *Config) Validate() error {
	if c.Database.Driver != "" {
		if _, err := sqlq.ParseDialect(c.Database.Driver); err != nil {
			return fmt.Errorf("%w: database.driver: %w", ErrInvalidValue, err)
		}
	}
	if c.Search.MaxLimit != nil {
		v := *c.Search.MaxLimit
		if v < MinLimit || v > MaxMaxLimit {
			return fmt.Errorf("%w: search.max_limit must be between %d and %d, got %d",
				ErrInvalidValue, MinLimit, MaxMaxLimit, v)
		}
	}
	if c.Search.Limit != nil {
		v := *c.Search.Limit
		if v < MinLimit || v > c.MaxLimit() {
			return fmt.Errorf("%w: search.limit must be between %d and %d, got %d",
				ErrInvalidValue, MinLimit, c.MaxLimit(), v)
		}
	}
	return nil
}

// Driver returns the database driver (defaults to sqlite).
func (c *Config) Driver() string {
	if c.Database.Driver == "" {
		return DefaultDriver
	}
	return c.Database.Driver
}

// DSN returns the data source name. An empty SQLite DSN resolves to
// .sift/sift.db.
func (c *Config) DSN() string {
	if c.Database.DSN == "" && c.Driver() == DefaultDriver {
		return filepath.Join(Dir, "sift.db")
	}
	return c.Database.DSN
}

// Limit returns the default page size (defaults to 20).
func (c *Config) Limit() int {
	if c.Search.Limit == nil {
		return min(DefaultLimit, c.MaxLimit())
	}
	return *c.Search.Limit
}

// MaxLimit returns the largest page size a caller may request (defaults to 1000).
func (c *Config) MaxLimit() int {
	if c.Search.MaxLimit == nil {
		return DefaultMaxLimit
	}
	return *c.Search.MaxLimit
}

// ClampLimit resolves a requested page size: zero or negative selects the
// default, anything above MaxLimit is capped.
func (c *Config) ClampLimit(n int) int {
	if n <= 0 {
		return c.Limit()
	}
	return min(n, c.MaxLimit())
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.sift/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
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

	cfg, err := load(path, false)
	if err != nil {
		return nil, err
	}
	cfg.scope = scope
	return cfg, nil
}

// LoadFile reads configuration from an explicit path. Unlike the scoped
// loaders, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	cfg, err := load(path, true)
	if err != nil {
		return nil, err
	}
	cfg.scope = ScopeFile
	return cfg, nil
}

func load(path string, mustExist bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !mustExist {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes and validates YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed YAML: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Path returns the file this config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
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
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
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
