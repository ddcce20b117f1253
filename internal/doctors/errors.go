package doctors

import "errors"

var (
	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike so login failures are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDoctorNotFound is returned when a doctor id does not exist.
	ErrDoctorNotFound = errors.New("doctor not found")
)
