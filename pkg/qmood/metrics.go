// Package qmood recomputes QMOOD design-quality attributes from per-class
// design metrics. Each attribute is a fixed linear formula over columns:
//
//	Reusability       = -0.25*DCC + 0.25*lcc + 0.5*CIS + 0.5*DSC
//	Flexibility       = 0.25*DAM - 0.25*DCC + 0.5*MOA + 0.5*NOP
//	Understandability = -0.33*ANA + 0.33*DAM - 0.33*DCC + 0.33*lcc - 0.33*NOP - 0.33*WMC - 0.33*DSC
//	Functionality     = 0.12*lcc + 0.22*NOP + 0.22*CIS + 0.22*DSC + 0.22*NOH
//	Extendibility     = 0.5*ANA - 0.5*DCC + 0.5*MFA + 0.5*NOP
//	Effectiveness     = 0.2*ANA + 0.2*DAM + 0.2*MOA + 0.2*MFA + 0.2*NOP
//
// Formulas are parsed once into (coefficient, column) terms and evaluated as
// weighted sums over column vectors.
package qmood

// Metric names
const (
	Reusability       = "Reusability"
	Flexibility       = "Flexibility"
	Understandability = "Understandability"
	Functionality     = "Functionality"
	Extendibility     = "Extendibility"
	Effectiveness     = "Effectiveness"
)

// Metric is a named formula as it appears in configuration
type Metric struct {
	Name    string `yaml:"name"`
	Formula string `yaml:"formula"`
}

// DefaultMetrics returns the six QMOOD quality attributes in evaluation order.
func DefaultMetrics() []Metric {
	return []Metric{
		{Name: Reusability, Formula: "-0.25 * DCC + 0.25 * lcc + 0.5 * CIS + 0.5 * DSC"},
		{Name: Flexibility, Formula: "0.25 * DAM - 0.25 * DCC + 0.5 * MOA + 0.5 * NOP"},
		{Name: Understandability, Formula: "-0.33 * ANA + 0.33 * DAM - 0.33 * DCC + 0.33 * lcc - 0.33 * NOP - 0.33 * WMC + - 0.33 * DSC"},
		{Name: Functionality, Formula: "0.12 * lcc + 0.22 * NOP + 0.22 * CIS + 0.22 * DSC + 0.22 * NOH"},
		{Name: Extendibility, Formula: "0.5 * ANA - 0.5 * DCC + 0.5 * MFA + 0.5 * NOP"},
		{Name: Effectiveness, Formula: "0.2 * ANA + 0.2 * DAM + 0.2 * MOA + 0.2 * MFA + 0.2 * NOP"},
	}
}
