package table

import "errors"

// Table errors
var (
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrColumnNotFound  = errors.New("column not found")
	ErrLengthMismatch  = errors.New("column length does not match table")
	ErrRowOutOfRange   = errors.New("row index out of range")
	ErrRaggedRow       = errors.New("row has more fields than the header")
	ErrEmptyInput      = errors.New("no columns to parse from input")
)
