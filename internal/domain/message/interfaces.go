package message

import "context"

// Repository persists sticky messages.
type Repository interface {
	Save(ctx context.Context, msg *Message) error
	ListPending(ctx context.Context) ([]Message, error)
	Get(ctx context.Context, id string) (*Message, error)
	Dismiss(ctx context.Context, id string) error
	DismissAll(ctx context.Context) (int64, error)
}
