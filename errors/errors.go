package errors

import "fmt"

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Input parsing errors
var (
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrInvalidCell       = fmt.Errorf("invalid cell number")
	ErrInvalidDemand     = fmt.Errorf("invalid demand")
	ErrDuplicateCell     = fmt.Errorf("duplicate cell")
	ErrEmptyRecord       = fmt.Errorf("empty record")
)

// Validation errors
var (
	ErrTotalChannelsOutOfRange = fmt.Errorf("total channels out of range")
	ErrInvalidClusterSize      = fmt.Errorf("invalid cluster size")
	ErrNegativeDemand          = fmt.Errorf("negative demand")
	ErrDemandLength            = fmt.Errorf("demand length does not match cluster size")
	ErrControlPercentage       = fmt.Errorf("control percentage out of range")
)

// Engine errors. ErrZeroCapacity is a reason attached to an empty result, it
// is never returned from the engine.
var (
	ErrZeroCapacity       = fmt.Errorf("no allocation possible")
	ErrResourceAllocation = fmt.Errorf("resource allocation failure")
)
