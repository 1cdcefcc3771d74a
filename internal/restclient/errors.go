package restclient

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is returned for every failed call: transport failures (StatusCode
// is zero and Err is set) and non-2xx responses.
type Error struct {
	Operation  string
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
	Err        error

	payload errorPayload
}

// errorPayload accepts both {"error":{"message":...}} and {"message":...}.
type errorPayload struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func newStatusError(operation, method, url string, statusCode int, status string, body []byte) *Error {
	e := &Error{
		Operation:  operation,
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Status:     status,
		Body:       body,
	}
	if len(body) > 0 {
		// Non-JSON bodies leave the payload empty.
		_ = json.Unmarshal(body, &e.payload)
	}
	return e
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s %s: %v", e.Operation, e.Method, e.URL, e.Err)
	}
	msg := e.BackendMessage()
	if msg == "" {
		msg = strings.TrimSpace(string(e.Body))
	}
	if msg == "" {
		return fmt.Sprintf("%s %s %s: status %d", e.Operation, e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s %s: status %d: %s", e.Operation, e.Method, e.URL, e.StatusCode, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BackendMessage returns the message the backend put in the error body,
// or "" when the body carried none.
func (e *Error) BackendMessage() string {
	if e.payload.Error != nil && e.payload.Error.Message != "" {
		return e.payload.Error.Message
	}
	return e.payload.Message
}
