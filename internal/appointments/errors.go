package appointments

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an appointment id does not exist.
var ErrNotFound = errors.New("appointment not found")

// ValidationError reports bad or missing input. Nothing is persisted when
// one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
