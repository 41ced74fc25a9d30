package analytics

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidDate is returned (wrapped) when a raw date matches none of the
// accepted shapes. Compare with errors.Is.
var ErrInvalidDate = constError("invalid date")

// InvalidDateError carries the value that could not be parsed.
type InvalidDateError struct {
	EventID string
	Value   string
}

func (e *InvalidDateError) Error() string {
	if e.EventID != "" {
		return fmt.Sprintf("invalid date %q for event %s", e.Value, e.EventID)
	}
	return fmt.Sprintf("invalid date %q", e.Value)
}

// Unwrap permite errors.Is(err, ErrInvalidDate).
func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }
