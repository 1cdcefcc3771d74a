package form

import "errors"

var (
	// ErrUnknownField indicates an edit to a field the form doesn't have.
	ErrUnknownField = errors.New("unknown form field")
)
