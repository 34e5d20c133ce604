package table

// nullMarkers are the cell texts read as missing values, matching the
// default NA set of pandas read_csv.
//
//nolint:gochecknoglobals // Read-only lookup table
var nullMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNull reports whether a cell holds a missing value. Markers are matched
// exactly; "na" or " NA" are ordinary text.
func IsNull(cell string) bool {
	_, ok := nullMarkers[cell]

	return ok
}
