package merge

import (
	"testing"

	"github.com/creasty/defaults"
	"github.com/ethpandaops/qmerge/internal/testutil"
	"github.com/ethpandaops/qmerge/pkg/matcher"
	"github.com/ethpandaops/qmerge/pkg/table"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()

	cfg := matcher.Config{}
	require.NoError(t, defaults.Set(&cfg))

	logger, _ := testutil.Logger()

	return NewEngine(matcher.New(cfg), logger)
}

func TestEngine_Merge_OverridesMatchedRow(t *testing.T) {
	base := testutil.Table(t, []string{"Name", "DCC", "lcc", "CIS", "DSC"},
		[]string{"Foo.java", "2", "1", "3", "1"},
		[]string{"Bar.java", "4", "1", "1", "1"},
	)
	override := testutil.Table(t, []string{"file", "dcc"},
		[]string{"foo.java", "5"},
	)

	result := newEngine(t).Merge(base, override, nil)

	assert.Equal(t, []string{"5", "4"}, testutil.Column(t, result.Table, "DCC"))
	assert.Equal(t, base.Columns(), result.Table.Columns(), "no implicit new columns")
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 0, result.Matches[0].BaseRow)
	assert.Equal(t, matcher.RuleFilePath, result.Matches[0].Rule)
	assert.Equal(t, []Assignment{{Source: "dcc", Target: "DCC"}}, result.Matches[0].Assignments)
	assert.Equal(t, []int{1}, result.UnmatchedBase)
	assert.Empty(t, result.UnmatchedOverride)

	got, _ := base.Get(0, "DCC")
	assert.Equal(t, "2", got, "base table is not mutated")
}

func TestEngine_Merge_FirstMatchWins(t *testing.T) {
	base := testutil.Table(t, []string{"Name", "DCC"},
		[]string{"Foo.java", "1"},
	)
	override := testutil.Table(t, []string{"file", "DCC"},
		[]string{"a/Foo.java", "7"},
		[]string{"b/Foo.java", "8"},
	)

	result := newEngine(t).Merge(base, override, nil)

	assert.Equal(t, "7", testutil.Cell(t, result.Table, 0, "DCC"))
	require.Len(t, result.UnmatchedOverride, 1)
	assert.Equal(t, UnmatchedRow{Index: 1, Class: Unknown, File: "b/Foo.java"}, result.UnmatchedOverride[0])
}

func TestEngine_Merge_NonExclusiveMatching(t *testing.T) {
	base := testutil.Table(t, []string{"Name", "DCC"},
		[]string{"a/Foo.java", "1"},
		[]string{"b/Foo.java", "2"},
	)
	override := testutil.Table(t, []string{"file", "DCC"},
		[]string{"foo.java", "9"},
	)

	result := newEngine(t).Merge(base, override, nil)

	assert.Equal(t, []string{"9", "9"}, testutil.Column(t, result.Table, "DCC"))
	assert.Len(t, result.Matches, 2)
	assert.Equal(t, 1, result.MatchedOverrideRows())
	assert.Empty(t, result.UnmatchedOverride)
}

func TestEngine_Merge_AddColumns(t *testing.T) {
	tests := []struct {
		name            string
		base            *table.Table
		override        *table.Table
		addColumns      []string
		expectedColumns []string
		expectedAdded   []string
		expectedValues  map[string][]string
	}{
		{
			name: "added column filled for matched rows only",
			base: testutil.Table(t, []string{"Name", "DCC"},
				[]string{"Foo.java", "1"},
				[]string{"Bar.java", "2"},
			),
			override: testutil.Table(t, []string{"file", "NewMetric"},
				[]string{"Foo.java", "0.7"},
			),
			addColumns:      []string{"NewMetric"},
			expectedColumns: []string{"Name", "DCC", "NewMetric"},
			expectedAdded:   []string{"NewMetric"},
			expectedValues:  map[string][]string{"NewMetric": {"0.7", ""}},
		},
		{
			name: "added column stays null when nothing matches",
			base: testutil.Table(t, []string{"Name"},
				[]string{"Foo.java"},
			),
			override: testutil.Table(t, []string{"file", "NewMetric"},
				[]string{"Other.java", "0.7"},
			),
			addColumns:      []string{"NewMetric"},
			expectedColumns: []string{"Name", "NewMetric"},
			expectedAdded:   []string{"NewMetric"},
			expectedValues:  map[string][]string{"NewMetric": {""}},
		},
		{
			name: "column absent from override is skipped",
			base: testutil.Table(t, []string{"Name"},
				[]string{"Foo.java"},
			),
			override: testutil.Table(t, []string{"file"},
				[]string{"Foo.java"},
			),
			addColumns:      []string{"Missing"},
			expectedColumns: []string{"Name"},
		},
		{
			name: "column already in base is written in place",
			base: testutil.Table(t, []string{"Name", "Extra"},
				[]string{"Foo.java", "old"},
			),
			override: testutil.Table(t, []string{"file", "Extra"},
				[]string{"Foo.java", "new"},
			),
			addColumns:      []string{"Extra"},
			expectedColumns: []string{"Name", "Extra"},
			expectedValues:  map[string][]string{"Extra": {"new"}},
		},
		{
			name: "added name differing only in case gets its own column",
			base: testutil.Table(t, []string{"Name", "extra"},
				[]string{"Foo.java", "old"},
			),
			override: testutil.Table(t, []string{"file", "Extra"},
				[]string{"Foo.java", "new"},
			),
			addColumns:      []string{"Extra"},
			expectedColumns: []string{"Name", "extra", "Extra"},
			expectedAdded:   []string{"Extra"},
			expectedValues:  map[string][]string{"extra": {"old"}, "Extra": {"new"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newEngine(t).Merge(tt.base, tt.override, tt.addColumns)

			assert.Equal(t, tt.expectedColumns, result.Table.Columns())
			assert.Equal(t, tt.expectedAdded, result.AddedColumns)
			assert.Equal(t, tt.base.Len(), result.Table.Len())
			for col, want := range tt.expectedValues {
				assert.Equal(t, want, testutil.Column(t, result.Table, col), col)
			}
		})
	}
}

func TestEngine_Merge_PreservesShape(t *testing.T) {
	base := testutil.Table(t, []string{"Name", "DCC"},
		[]string{"C.java", "3"},
		[]string{"A.java", "1"},
		[]string{"B.java", "2"},
	)
	override := testutil.Table(t, []string{"file", "DCC"},
		[]string{"B.java", "20"},
		[]string{"Z.java", "99"},
		[]string{"C.java", "30"},
	)

	result := newEngine(t).Merge(base, override, []string{"DCC", "Nope"})

	assert.Equal(t, 3, result.Table.Len())
	assert.Equal(t, []string{"C.java", "A.java", "B.java"}, testutil.Column(t, result.Table, "Name"))
	assert.Equal(t, []string{"30", "1", "20"}, testutil.Column(t, result.Table, "DCC"))
	assert.Equal(t, []int{1}, result.UnmatchedBase)
	require.Len(t, result.UnmatchedOverride, 1)
	assert.Equal(t, 1, result.UnmatchedOverride[0].Index)
}

func TestEngine_Merge_NoMatchesEqualsBase(t *testing.T) {
	base := testutil.Table(t, []string{"Name", "DCC"},
		[]string{"Foo.java", "1"},
	)
	override := testutil.Table(t, []string{"class", "DCC"},
		[]string{"com.acme.Foo", "9"},
	)

	result := newEngine(t).Merge(base, override, nil)

	assert.Equal(t, base.Columns(), result.Table.Columns())
	assert.Equal(t, base.Record(0), result.Table.Record(0))
	assert.Empty(t, result.Matches)
	require.Len(t, result.UnmatchedOverride, 1)
	assert.Equal(t, UnmatchedRow{Index: 0, Class: "com.acme.Foo", File: Unknown}, result.UnmatchedOverride[0])
}

func TestEngine_Merge_ReportsUnmatchedOverrideRows(t *testing.T) {
	cfg := matcher.Config{}
	require.NoError(t, defaults.Set(&cfg))
	logger, hook := testutil.Logger()

	base := testutil.Table(t, []string{"Name"}, []string{"Foo.java"})
	override := testutil.Table(t, []string{"file", "class"},
		[]string{"Foo.java", "com.acme.Foo"},
		[]string{"Qux.java", "com.acme.Qux"},
	)

	NewEngine(matcher.New(cfg), logger).Merge(base, override, nil)

	warnings := testutil.Messages(hook, logrus.WarnLevel)
	assert.Contains(t, warnings, "1 rows in the override table were not matched")
	assert.Contains(t, warnings, "  - com.acme.Qux (Qux.java)")
}

func TestEngine_Merge_ReportsAssignedColumnsAtInfo(t *testing.T) {
	cfg := matcher.Config{}
	require.NoError(t, defaults.Set(&cfg))
	logger, hook := testutil.Logger()

	base := testutil.Table(t, []string{"Name", "DCC", "CIS"},
		[]string{"Foo.java", "1", "2"},
	)
	override := testutil.Table(t, []string{"file", "DCC", "cis", "NewMetric"},
		[]string{"foo.java", "5", "6", "0.7"},
	)

	NewEngine(matcher.New(cfg), logger).Merge(base, override, []string{"NewMetric"})

	info := testutil.Messages(hook, logrus.InfoLevel)
	assert.Contains(t, info, "Overrode columns: DCC, CIS")
	assert.Contains(t, info, "Added columns: NewMetric")
	assert.NotContains(t, info, "Overriding DCC with value from DCC")

	debug := testutil.Messages(hook, logrus.DebugLevel)
	assert.Contains(t, debug, "Overriding CIS with value from cis")
	assert.Contains(t, debug, "Adding NewMetric with value from NewMetric")
}
