// config_keys.go provides key-value access to configuration settings.
//
// Only scalar settings are addressable by key. Entity definitions are
// nested mappings and are edited in the YAML file directly.
//
// Pointers are used for optional numeric fields so "not set" (nil) can be
// told apart from an explicit value and defaults are applied only when the
// user has not set one.

package config

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/jpl-au/sift/internal/sqlq"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"database.driver", "database.dsn",
		"search.limit", "search.max_limit",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "database.driver":
		return c.Driver(), nil
	case "database.dsn":
		return c.DSN(), nil
	case "search.limit":
		return strconv.Itoa(c.Limit()), nil
	case "search.max_limit":
		return strconv.Itoa(c.MaxLimit()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "database.driver":
		d, err := sqlq.ParseDialect(value)
		if err != nil {
			return fmt.Errorf("%w: database.driver must be sqlite or postgres", ErrInvalidValue)
		}
		c.Database.Driver = d.String()
	case "database.dsn":
		c.Database.DSN = value
	case "search.limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinLimit || n > c.MaxLimit() {
			return fmt.Errorf("%w: search.limit must be an integer between %d and %d", ErrInvalidValue, MinLimit, c.MaxLimit())
		}
		c.Search.Limit = &n
	case "search.max_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinLimit || n > MaxMaxLimit {
			return fmt.Errorf("%w: search.max_limit must be an integer between %d and %d", ErrInvalidValue, MinLimit, MaxMaxLimit)
		}
		if c.Search.Limit != nil && *c.Search.Limit > n {
			return fmt.Errorf("%w: search.max_limit must not be below search.limit (%d)", ErrInvalidValue, *c.Search.Limit)
		}
		c.Search.MaxLimit = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"database.driver":  c.Driver(),
		"database.dsn":     c.DSN(),
		"search.limit":     strconv.Itoa(c.Limit()),
		"search.max_limit": strconv.Itoa(c.MaxLimit()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "database.driver":
		return c.Database.Driver != ""
	case "database.dsn":
		return c.Database.DSN != ""
	case "search.limit":
		return c.Search.Limit != nil
	case "search.max_limit":
		return c.Search.MaxLimit != nil
	default:
		return false
	}
}
