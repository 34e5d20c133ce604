package qmood

import (
	"math"
	"testing"

	"github.com/ethpandaops/qmerge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormula(t *testing.T) {
	tests := []struct {
		name             string
		src              string
		expectedTerms    []Term
		expectedConstant float64
		expectedErr      error
	}{
		{
			name: "weighted sum",
			src:  "-0.25 * DCC + 0.25 * lcc + 0.5 * CIS",
			expectedTerms: []Term{
				{Coefficient: -0.25, Column: "DCC"},
				{Coefficient: 0.25, Column: "lcc"},
				{Coefficient: 0.5, Column: "CIS"},
			},
		},
		{
			name: "binary minus and doubled sign",
			src:  "0.33 * DAM - 0.33 * WMC + - 0.33 * DSC",
			expectedTerms: []Term{
				{Coefficient: 0.33, Column: "DAM"},
				{Coefficient: -0.33, Column: "WMC"},
				{Coefficient: -0.33, Column: "DSC"},
			},
		},
		{
			name: "parentheses and constant division distribute",
			src:  "2 * (A + B) / 4",
			expectedTerms: []Term{
				{Coefficient: 0.5, Column: "A"},
				{Coefficient: 0.5, Column: "B"},
			},
		},
		{
			name:          "column times coefficient",
			src:           "NOP * 0.22",
			expectedTerms: []Term{{Coefficient: 0.22, Column: "NOP"}},
		},
		{
			name:          "exponent literal",
			src:           "1e-3 * A",
			expectedTerms: []Term{{Coefficient: 0.001, Column: "A"}},
		},
		{
			name:          "double negation",
			src:           "- - A",
			expectedTerms: []Term{{Coefficient: 1, Column: "A"}},
		},
		{
			name:             "constant term",
			src:              "A - 2",
			expectedTerms:    []Term{{Coefficient: 1, Column: "A"}},
			expectedConstant: -2,
		},
		{
			name:             "constant only",
			src:              "3",
			expectedConstant: 3,
		},
		{
			name:        "product of columns",
			src:         "A * B",
			expectedErr: ErrNonLinear,
		},
		{
			name:        "division by column",
			src:         "1 / A",
			expectedErr: ErrNonLinear,
		},
		{
			name:        "division by zero",
			src:         "A / 0",
			expectedErr: ErrInvalidFormula,
		},
		{
			name:        "dangling operator",
			src:         "A +",
			expectedErr: ErrInvalidFormula,
		},
		{
			name:        "unclosed parenthesis",
			src:         "(A + B",
			expectedErr: ErrInvalidFormula,
		},
		{
			name:        "unknown character",
			src:         "A $ B",
			expectedErr: ErrInvalidFormula,
		},
		{
			name:        "adjacent operands",
			src:         "2 A",
			expectedErr: ErrInvalidFormula,
		},
		{
			name:        "empty",
			src:         "",
			expectedErr: ErrInvalidFormula,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFormula(tt.src)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.src, f.Source)
			require.Len(t, f.Terms, len(tt.expectedTerms))
			for i, want := range tt.expectedTerms {
				assert.Equal(t, want.Column, f.Terms[i].Column)
				assert.InDelta(t, want.Coefficient, f.Terms[i].Coefficient, 1e-12)
			}
			assert.InDelta(t, tt.expectedConstant, f.Constant, 1e-12)
		})
	}
}

func TestFormula_String(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{src: "-0.25 * DCC + 0.5 * CIS", expected: "-0.25*DCC + 0.5*CIS"},
		{src: "A - 2", expected: "1*A - 2"},
		{src: "3", expected: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.expected, MustParseFormula(tt.src).String())
		})
	}
}

func TestFormula_Columns(t *testing.T) {
	f := MustParseFormula("0.5 * ANA - 0.5 * DCC + 0.5 * ANA")
	assert.Equal(t, []string{"ANA", "DCC"}, f.Columns())
}

func TestFormula_Evaluate(t *testing.T) {
	tbl := testutil.Table(t, []string{"DCC", "lcc", "CIS", "DSC"},
		[]string{"5", "1", "3", "1"},
		[]string{"0", "", "1", "1"},
	)

	values, err := MustParseFormula(DefaultMetrics()[0].Formula).Evaluate(tbl)
	require.NoError(t, err)
	require.Len(t, values, 2)

	assert.Equal(t, 1.0, values[0])
	assert.True(t, math.IsNaN(values[1]), "null cells propagate as NaN")
}

func TestFormula_EvaluateErrors(t *testing.T) {
	tbl := testutil.Table(t, []string{"A", "Label"},
		[]string{"1", "x"},
	)

	_, err := MustParseFormula("2 * B").Evaluate(tbl)
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = MustParseFormula("2 * Label").Evaluate(tbl)
	assert.ErrorIs(t, err, ErrNonNumeric)

	for _, raw := range []string{"1_0", "0x10", "0X1p-2"} {
		_, err = MustParseFormula("2 * A").Evaluate(testutil.Table(t, []string{"A"}, []string{raw}))
		assert.ErrorIs(t, err, ErrNonNumeric, raw)
	}

	_, err = MustParseFormula("2 * a").Evaluate(tbl)
	assert.ErrorIs(t, err, ErrUnknownColumn, "column names are case-sensitive")
}

func TestFormula_WholeTokenColumns(t *testing.T) {
	tbl := testutil.Table(t, []string{"MOA", "MOA2"},
		[]string{"1", "5"},
	)

	values, err := MustParseFormula("3 * MOA").Evaluate(tbl)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, values)

	values, err = MustParseFormula("2 * MOA2").Evaluate(tbl)
	require.NoError(t, err)
	assert.Equal(t, []float64{10}, values)
}

func TestMustParseFormula_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseFormula("A *") })
}
