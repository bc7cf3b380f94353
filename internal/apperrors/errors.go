// Package apperrors holds the error kinds services report to callers.
// Wrap them with fmt.Errorf("%w: ...") and test with errors.Is.
package apperrors

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrAuthorization = errors.New("access denied")
	ErrPrecondition  = errors.New("precondition failed")
	ErrUniqueness    = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)

// ErrHomeAirportRequired is returned when a scoped query runs for a pilot with no home airport
var ErrHomeAirportRequired = wrap(ErrPrecondition, "set your home airport first")

type wrapped struct {
	kind error
	msg  string
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.kind }

func wrap(kind error, msg string) error {
	return &wrapped{kind: kind, msg: msg}
}
