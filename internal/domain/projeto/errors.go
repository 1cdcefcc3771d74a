package projeto

import "errors"

var (
	// ErrMalformedDate indicates a date that is not in dd/mm/yyyy form.
	ErrMalformedDate = errors.New("malformed date")
	// ErrInvalidInput indicates invalid projeto input.
	ErrInvalidInput = errors.New("invalid projeto input")
)
