package records

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedJSON   = errors.New("malformed JSON")
	ErrMissingCorp     = errors.New("missing Corp object")
	ErrMissingOfficers = errors.New("missing Officers array")
)

// LoadError identifies the input that stopped a load.
type LoadError struct {
	File  string // path of the offending file
	Index int    // officer index within the file, or -1
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("load %s (officer %d): %v", e.File, e.Index, e.Cause)
	}
	return fmt.Sprintf("load %s: %v", e.File, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}
