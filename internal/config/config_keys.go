// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go so the YAML structure stays apart from the
// string-keyed access the CLI and MCP tools use ("theme.datasource").
//
// Pointers are used for optional fields so "not set" and "explicitly false"
// stay distinct; defaults only apply to the former.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"theme.path", "theme.datasource", "theme.db", "theme.watch",
		"halcyon.bare_code",
		"limits.max_path", "limits.max_content",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "theme.path":
		return c.ThemePath(), nil
	case "theme.datasource":
		return c.Datasource(), nil
	case "theme.db":
		return c.DBPath(), nil
	case "theme.watch":
		return strconv.FormatBool(c.Watch()), nil
	case "halcyon.bare_code":
		return strconv.FormatBool(c.BareCode()), nil
	case "limits.max_path":
		return strconv.Itoa(c.MaxPath()), nil
	case "limits.max_content":
		return strconv.FormatInt(c.MaxContent(), 10), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "theme.path":
		c.Theme.Path = value
	case "theme.datasource":
		switch value {
		case DatasourceFile, DatasourceDB, DatasourceAuto:
			c.Theme.Datasource = value
		default:
			return fmt.Errorf("%w: theme.datasource must be file, db or auto", ErrInvalidValue)
		}
	case "theme.db":
		c.Theme.DB = value
	case "theme.watch":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Theme.Watch = &b
	case "halcyon.bare_code":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Halcyon.BareCode = &b
	case "limits.max_path":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxPath || n > MaxMaxPath {
			return fmt.Errorf("%w: limits.max_path must be between %d and %d", ErrInvalidValue, MinMaxPath, MaxMaxPath)
		}
		c.Limits.MaxPath = &n
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < MinMaxContent || n > MaxMaxContent {
			return fmt.Errorf("%w: limits.max_content must be between %d and %d", ErrInvalidValue, MinMaxContent, MaxMaxContent)
		}
		c.Limits.MaxContent = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	v := strings.ToLower(value)
	if v != "true" && v != "false" {
		return false, fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
	}
	return v == "true", nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		out[k], _ = c.Get(k)
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "theme.path":
		return c.Theme.Path != ""
	case "theme.datasource":
		return c.Theme.Datasource != ""
	case "theme.db":
		return c.Theme.DB != ""
	case "theme.watch":
		return c.Theme.Watch != nil
	case "halcyon.bare_code":
		return c.Halcyon.BareCode != nil
	case "limits.max_path":
		return c.Limits.MaxPath != nil
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	default:
		return false
	}
}
