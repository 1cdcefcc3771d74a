package mocks

import (
	"context"

	"github.com/rpggio/projeto/internal/domain/message"
	"github.com/stretchr/testify/mock"
)

// API is a mock for projeto.API.
type API struct {
	mock.Mock
}

func (m *API) Get(ctx context.Context, operation, path string, out any) error {
	args := m.Called(ctx, operation, path, out)
	return args.Error(0)
}

func (m *API) Post(ctx context.Context, operation, path string, body, out any) error {
	args := m.Called(ctx, operation, path, body, out)
	return args.Error(0)
}

func (m *API) Put(ctx context.Context, operation, path string, body, out any) error {
	args := m.Called(ctx, operation, path, body, out)
	return args.Error(0)
}

func (m *API) Delete(ctx context.Context, operation, path string, out any) error {
	args := m.Called(ctx, operation, path, out)
	return args.Error(0)
}

// Notifier is a mock for projeto.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Success(ctx context.Context, text string, sticky bool) {
	m.Called(ctx, text, sticky)
}

func (m *Notifier) Error(ctx context.Context, text string, sticky bool) {
	m.Called(ctx, text, sticky)
}

// MessageRepository is a mock for message.Repository.
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Save(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) ListPending(ctx context.Context) ([]message.Message, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]message.Message); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) Get(ctx context.Context, id string) (*message.Message, error) {
	args := m.Called(ctx, id)
	if msg, ok := args.Get(0).(*message.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) Dismiss(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MessageRepository) DismissAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
