package appointments

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an appointment does not exist.
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidStatus is returned when an admin edit carries an unknown status.
	ErrInvalidStatus = errors.New("status must be one of pending, confirmed, completed, cancelled")
)

// ValidationError reports every failed check on a submission at once, so the
// form can surface a single message naming each problem.
type ValidationError struct {
	Missing []string // required fields that were empty after trimming
	Reasons []string // format problems (email syntax, date out of window, ...)
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", ")))
	}
	parts = append(parts, e.Reasons...)
	return strings.Join(parts, "; ")
}

func (e *ValidationError) empty() bool {
	return len(e.Missing) == 0 && len(e.Reasons) == 0
}

// IsValidationError reports whether err is a submission validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
