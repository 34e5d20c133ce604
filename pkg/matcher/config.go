package matcher

import (
	"errors"
	"strings"
)

var (
	// ErrClassColumnsRequired is returned when a class column name is blank
	ErrClassColumnsRequired = errors.New("class column names must not be empty")
	// ErrPathColumnsRequired is returned when a path column name is blank
	ErrPathColumnsRequired = errors.New("path column names must not be empty")
	// ErrInvalidExtension is returned when an extension does not start with a dot
	ErrInvalidExtension = errors.New("extension must start with '.'")
)

// Config names the identity columns on each side and the source-file
// extensions stripped from path basenames.
type Config struct {
	ClassColumn         string   `yaml:"classColumn" default:"ClassNames"`
	OverrideClassColumn string   `yaml:"overrideClassColumn" default:"class"`
	PathColumn          string   `yaml:"pathColumn" default:"Name"`
	OverrideFileColumn  string   `yaml:"overrideFileColumn" default:"file"`
	Extensions          []string `yaml:"extensions" default:"[\".java\"]"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ClassColumn == "" || c.OverrideClassColumn == "" {
		return ErrClassColumnsRequired
	}

	if c.PathColumn == "" || c.OverrideFileColumn == "" {
		return ErrPathColumnsRequired
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return ErrInvalidExtension
		}
	}

	return nil
}
