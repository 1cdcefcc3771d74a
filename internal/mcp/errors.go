package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/projeto/internal/domain/message"
	"github.com/rpggio/projeto/internal/domain/projeto"
	"github.com/rpggio/projeto/internal/form"
)

// APIError represents an MCP tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors yield nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, projeto.ErrMalformedDate):
		return &APIError{Code: "INVALID_DATE", Message: err.Error(), RecoveryHint: "Use dd/mm/yyyy"}
	case errors.Is(err, form.ErrUnknownField):
		return &APIError{Code: "UNKNOWN_FIELD", Message: err.Error()}
	case errors.Is(err, projeto.ErrInvalidInput), errors.Is(err, message.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, message.ErrMessageNotFound):
		return &APIError{Code: "MESSAGE_NOT_FOUND", Message: "message not found", RecoveryHint: "Call list_messages for pending ids"}
	default:
		return nil
	}
}

// toolError converts err into the error returned from a tool handler.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

// backendError reports a service call that resolved to its fallback. The
// text is the same one the notification carried.
const codeBackendFailure = "BACKEND_FAILURE"

func backendError(text string) error {
	return &APIError{Code: codeBackendFailure, Message: text}
}
