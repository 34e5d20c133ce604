package qmood

import "errors"

// Formula and metric configuration errors
var (
	ErrInvalidFormula      = errors.New("invalid formula")
	ErrNonLinear           = errors.New("formula is not linear")
	ErrUnknownColumn       = errors.New("column not defined")
	ErrNonNumeric          = errors.New("non-numeric value")
	ErrMetricNameRequired  = errors.New("metric name is required")
	ErrDuplicateMetric     = errors.New("duplicate metric")
	ErrInvalidPrecision    = errors.New("precision must be between 0 and 15")
	ErrInconsistentGraph   = errors.New("metric graph is inconsistent: vertex count mismatch")
	ErrMetricNotRegistered = errors.New("metric not registered")
)
