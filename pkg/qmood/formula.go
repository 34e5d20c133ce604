package qmood

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ethpandaops/qmerge/pkg/table"
)

// Term is one coefficient applied to one column
type Term struct {
	Coefficient float64
	Column      string
}

// Formula is a parsed linear combination of columns plus a constant.
// Terms keep the order in which their columns appear in Source.
type Formula struct {
	Source   string
	Terms    []Term
	Constant float64
}

// ParseFormula parses an arithmetic expression over column names built from
// numbers, identifiers, + - * / and parentheses. The expression must be
// linear: a product may contain at most one column and divisors must be
// constants.
func ParseFormula(src string) (*Formula, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidFormula, tok.text, tok.pos)
	}

	return &Formula{
		Source:   src,
		Terms:    expr.terms,
		Constant: expr.constant,
	}, nil
}

// MustParseFormula is like ParseFormula but panics on error.
func MustParseFormula(src string) *Formula {
	f, err := ParseFormula(src)
	if err != nil {
		panic(err)
	}

	return f
}

// Columns returns the distinct referenced column names in order of first use.
func (f *Formula) Columns() []string {
	seen := make(map[string]bool, len(f.Terms))
	cols := make([]string, 0, len(f.Terms))

	for _, term := range f.Terms {
		if seen[term.Column] {
			continue
		}
		seen[term.Column] = true
		cols = append(cols, term.Column)
	}

	return cols
}

// String renders the normalized linear form, e.g. "-0.25*DCC + 0.5*CIS".
func (f *Formula) String() string {
	var b strings.Builder

	for i, term := range f.Terms {
		coef := term.Coefficient
		switch {
		case i == 0:
		case coef < 0:
			b.WriteString(" - ")
			coef = -coef
		default:
			b.WriteString(" + ")
		}
		b.WriteString(strconv.FormatFloat(coef, 'g', -1, 64))
		b.WriteString("*")
		b.WriteString(term.Column)
	}

	if f.Constant != 0 || len(f.Terms) == 0 {
		constant := f.Constant
		switch {
		case len(f.Terms) == 0:
		case constant < 0:
			b.WriteString(" - ")
			constant = -constant
		default:
			b.WriteString(" + ")
		}
		b.WriteString(strconv.FormatFloat(constant, 'g', -1, 64))
	}

	return b.String()
}

// Evaluate computes the formula for every row of t. Every referenced column
// must exist under its exact name and hold numeric or null cells; null cells
// (see table.IsNull) evaluate to NaN.
func (f *Formula) Evaluate(t *table.Table) ([]float64, error) {
	vectors := make(map[string][]float64, len(f.Terms))

	for _, name := range f.Columns() {
		col, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}

		vec, err := numericColumn(col)
		if err != nil {
			return nil, err
		}
		vectors[name] = vec
	}

	out := make([]float64, t.Len())
	for i := range out {
		acc := 0.0
		for _, term := range f.Terms {
			acc += term.Coefficient * vectors[term.Column][i]
		}
		out[i] = acc + f.Constant
	}

	return out, nil
}

func numericColumn(col *table.Column) ([]float64, error) {
	vec := make([]float64, len(col.Values))

	for i, raw := range col.Values {
		if table.IsNull(raw) || strings.TrimSpace(raw) == "" {
			vec[i] = math.NaN()
			continue
		}

		raw = strings.TrimSpace(raw)

		// digit separators and hex literals are text, not numbers
		if strings.ContainsAny(raw, "_xX") {
			return nil, fmt.Errorf("%w: column %s row %d value %q", ErrNonNumeric, col.Name, i, raw)
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %s row %d value %q", ErrNonNumeric, col.Name, i, raw)
		}
		vec[i] = v
	}

	return vec, nil
}
