// Package matcher pairs base rows with override rows by class identity.
package matcher

import (
	"strings"

	"github.com/ethpandaops/qmerge/pkg/table"
)

// Rule identifies which identity rule paired two rows.
type Rule int

const (
	// RuleNone means the rows do not match
	RuleNone Rule = iota
	// RuleClassName means the class-name fields are equal
	RuleClassName
	// RuleFilePath means the normalized path basenames are equal
	RuleFilePath
)

// String returns the rule name used in diagnostics
func (r Rule) String() string {
	switch r {
	case RuleClassName:
		return "class_name"
	case RuleFilePath:
		return "file_path"
	default:
		return "none"
	}
}

// Matcher decides whether a base row and an override row describe the same class
type Matcher struct {
	config     Config
	extensions []string
}

// New creates a matcher from a validated configuration
func New(config Config) *Matcher {
	extensions := make([]string, len(config.Extensions))
	for i, ext := range config.Extensions {
		extensions[i] = strings.ToLower(ext)
	}

	return &Matcher{
		config:     config,
		extensions: extensions,
	}
}

// Match applies the identity rules in order and returns the first applicable
// rule if it matches. The class-name rule applies whenever both class columns
// exist; the path rule is only consulted when it does not.
func (m *Matcher) Match(base, override table.Row) Rule {
	if base.Has(m.config.ClassColumn) && override.Has(m.config.OverrideClassColumn) {
		baseClass, _ := base.Get(m.config.ClassColumn)
		overrideClass, _ := override.Get(m.config.OverrideClassColumn)

		// null cells never compare equal
		if !table.IsNull(baseClass) && !table.IsNull(overrideClass) && baseClass == overrideClass {
			return RuleClassName
		}

		return RuleNone
	}

	if base.Has(m.config.PathColumn) && override.Has(m.config.OverrideFileColumn) {
		basePath, _ := base.Get(m.config.PathColumn)
		overridePath, _ := override.Get(m.config.OverrideFileColumn)

		if table.IsNull(basePath) || table.IsNull(overridePath) {
			return RuleNone
		}

		if m.IdentityKey(basePath) == m.IdentityKey(overridePath) {
			return RuleFilePath
		}
	}

	return RuleNone
}

// Matches reports whether the two rows describe the same class
func (m *Matcher) Matches(base, override table.Row) bool {
	return m.Match(base, override) != RuleNone
}

// IdentityKey reduces a file path to its lowercase basename without a
// recognized source extension. Both '/' and '\' separate directories.
func (m *Matcher) IdentityKey(path string) string {
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	lower := strings.ToLower(name)
	for _, ext := range m.extensions {
		if strings.HasSuffix(lower, ext) {
			return lower[:len(lower)-len(ext)]
		}
	}

	return lower
}

// Config returns the identity column configuration
func (m *Matcher) Config() Config {
	return m.config
}
