package merge

import (
	"github.com/ethpandaops/qmerge/pkg/matcher"
	"github.com/ethpandaops/qmerge/pkg/table"
)

// Unknown stands in for identity fields absent from an override row
const Unknown = "Unknown"

// Match records one base row paired with the first matching override row
type Match struct {
	BaseRow     int
	OverrideRow int
	Rule        matcher.Rule
	BaseName    string
	OverrideID  string
	Assignments []Assignment
}

// Assignment records one override cell written into the result
type Assignment struct {
	Source string
	Target string
	Added  bool
}

// UnmatchedRow identifies an override row that no base row matched
type UnmatchedRow struct {
	Index int
	Class string
	File  string
}

// Result is the merged table plus the diagnostics gathered while merging
type Result struct {
	Table             *table.Table
	Matches           []Match
	AddedColumns      []string
	UnmatchedBase     []int
	UnmatchedOverride []UnmatchedRow
}

// MatchedOverrideRows returns how many distinct override rows were used
func (r *Result) MatchedOverrideRows() int {
	used := make(map[int]struct{}, len(r.Matches))
	for _, m := range r.Matches {
		used[m.OverrideRow] = struct{}{}
	}

	return len(used)
}
