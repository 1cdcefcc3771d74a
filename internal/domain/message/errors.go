package message

import "errors"

var (
	// ErrMessageNotFound indicates the message doesn't exist or was already dismissed.
	ErrMessageNotFound = errors.New("message not found")
	// ErrInvalidInput indicates invalid message input.
	ErrInvalidInput = errors.New("invalid message input")
)
