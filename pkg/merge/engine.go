// Package merge overlays override rows onto a base table.
package merge

import (
	"strings"

	"github.com/ethpandaops/qmerge/pkg/matcher"
	"github.com/ethpandaops/qmerge/pkg/table"
	"github.com/sirupsen/logrus"
)

// Engine merges an override table into a base table
type Engine struct {
	matcher *matcher.Matcher
	log     logrus.FieldLogger
}

// NewEngine creates a merge engine
func NewEngine(m *matcher.Matcher, log logrus.FieldLogger) *Engine {
	return &Engine{
		matcher: m,
		log:     log.WithField("component", "merge"),
	}
}

// Merge copies base and, for every base row in order, applies the first
// override row that matches it. Override columns listed in addColumns are
// written under their own name, adding the column when base lacks it; other
// override columns replace the first base column equal under case folding.
// Remaining override columns are ignored.
//
// The result always has base's row count and order. An override row may
// satisfy several base rows.
func (e *Engine) Merge(base, override *table.Table, addColumns []string) *Result {
	result := &Result{
		Table: base.Clone(),
	}

	add := make(map[string]bool, len(addColumns))
	for _, col := range addColumns {
		add[col] = true

		if !override.Has(col) {
			e.log.WithField("column", col).Debug("Requested column not present in override table, skipping")
			continue
		}
		if result.Table.Has(col) {
			continue
		}

		if err := result.Table.AddColumn(col); err != nil {
			e.log.WithError(err).WithField("column", col).Warn("Failed to add column")
			continue
		}

		result.AddedColumns = append(result.AddedColumns, col)
		e.log.WithField("column", col).Info("Added new column from override table")
	}

	targets := e.resolveTargets(base, override, add)
	used := make(map[int]bool, override.Len())
	cfg := e.matcher.Config()

	for i := 0; i < base.Len(); i++ {
		baseRow := base.Row(i)
		matched := false

		for j := 0; j < override.Len(); j++ {
			overrideRow := override.Row(j)

			rule := e.matcher.Match(baseRow, overrideRow)
			if rule == matcher.RuleNone {
				continue
			}

			match := Match{
				BaseRow:     i,
				OverrideRow: j,
				Rule:        rule,
				BaseName:    baseRow.GetOr(cfg.PathColumn, baseRow.GetOr(cfg.ClassColumn, "")),
				OverrideID:  overrideRow.GetOr(cfg.OverrideFileColumn, overrideRow.GetOr(cfg.OverrideClassColumn, "")),
			}

			log := e.log.WithFields(logrus.Fields{
				"base_row":     i,
				"override_row": j,
				"rule":         rule.String(),
			})
			log.Infof("Found match: %s - %s", match.BaseName, match.OverrideID)

			var added, overridden []string
			for _, target := range targets {
				value, _ := overrideRow.Get(target.Source)
				if err := result.Table.Set(i, target.Target, value); err != nil {
					log.WithError(err).WithField("column", target.Target).Warn("Failed to write override value")
					continue
				}

				match.Assignments = append(match.Assignments, target)
				if target.Added {
					added = append(added, target.Target)
					log.Debugf("Adding %s with value from %s", target.Target, target.Source)
				} else {
					overridden = append(overridden, target.Target)
					log.Debugf("Overriding %s with value from %s", target.Target, target.Source)
				}
			}

			if len(overridden) > 0 {
				log.Infof("Overrode columns: %s", strings.Join(overridden, ", "))
			}
			if len(added) > 0 {
				log.Infof("Added columns: %s", strings.Join(added, ", "))
			}

			result.Matches = append(result.Matches, match)
			used[j] = true
			matched = true

			break
		}

		if !matched {
			result.UnmatchedBase = append(result.UnmatchedBase, i)
		}
	}

	for j := 0; j < override.Len(); j++ {
		if used[j] {
			continue
		}

		row := override.Row(j)
		result.UnmatchedOverride = append(result.UnmatchedOverride, UnmatchedRow{
			Index: j,
			Class: orUnknown(row, cfg.OverrideClassColumn),
			File:  orUnknown(row, cfg.OverrideFileColumn),
		})
	}

	if len(result.UnmatchedOverride) > 0 {
		e.log.Warnf("%d rows in the override table were not matched", len(result.UnmatchedOverride))
		for _, u := range result.UnmatchedOverride {
			e.log.WithField("override_row", u.Index).Warnf("  - %s (%s)", u.Class, u.File)
		}
	}

	return result
}

// resolveTargets maps every override column to the result column it writes,
// in override column order.
func (e *Engine) resolveTargets(base, override *table.Table, add map[string]bool) []Assignment {
	var targets []Assignment

	for _, col := range override.Columns() {
		if add[col] {
			targets = append(targets, Assignment{
				Source: col,
				Target: col,
				Added:  !base.Has(col),
			})
			continue
		}

		if target, ok := base.LookupFold(col); ok {
			targets = append(targets, Assignment{Source: col, Target: target})
		}
	}

	return targets
}

func orUnknown(row table.Row, column string) string {
	value, ok := row.Get(column)
	if !ok || value == "" {
		return Unknown
	}

	return value
}
