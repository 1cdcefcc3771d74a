package projeto

import "context"

// API performs the HTTP calls against the projeto resource family. Paths
// are relative to the API base. A nil out skips response decoding.
type API interface {
	Get(ctx context.Context, operation, path string, out any) error
	Post(ctx context.Context, operation, path string, body, out any) error
	Put(ctx context.Context, operation, path string, body, out any) error
	Delete(ctx context.Context, operation, path string, out any) error
}

// Notifier receives user-facing notifications. Calls are fire-and-forget.
type Notifier interface {
	Success(ctx context.Context, text string, sticky bool)
	Error(ctx context.Context, text string, sticky bool)
}

// BackendMessager is implemented by transport errors that carry a
// backend-supplied error.message.
type BackendMessager interface {
	BackendMessage() string
}
