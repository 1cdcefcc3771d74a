package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/projeto/internal/repository"
)

// Listener is called synchronously for every notification.
type Listener func(Message)

// Service is the notification sink. Success and Error never fail the
// caller: persistence problems are logged and dropped.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu        sync.RWMutex
	listeners []Listener
}

// NewService creates a new message service. repo may be nil, in which case
// sticky messages are only logged and broadcast.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Subscribe registers a listener for every subsequent notification.
func (s *Service) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Success emits a success notification.
func (s *Service) Success(ctx context.Context, text string, sticky bool) {
	s.emit(ctx, LevelSuccess, text, sticky)
}

// Error emits an error notification.
func (s *Service) Error(ctx context.Context, text string, sticky bool) {
	s.emit(ctx, LevelError, text, sticky)
}

// Pending lists sticky messages that have not been dismissed, oldest first.
func (s *Service) Pending(ctx context.Context) ([]Message, error) {
	if s.repo == nil {
		return []Message{}, nil
	}
	msgs, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pending messages: %w", err)
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs, nil
}

// Get returns one persisted message, dismissed or not.
func (s *Service) Get(ctx context.Context, id string) (*Message, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	if s.repo == nil {
		return nil, ErrMessageNotFound
	}
	msg, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("getting message: %w", err)
	}
	return msg, nil
}

// Dismiss marks a sticky message as dismissed.
func (s *Service) Dismiss(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	if s.repo == nil {
		return ErrMessageNotFound
	}
	if err := s.repo.Dismiss(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("dismissing message: %w", err)
	}
	return nil
}

// DismissAll dismisses every pending message and returns how many were.
func (s *Service) DismissAll(ctx context.Context) (int64, error) {
	if s.repo == nil {
		return 0, nil
	}
	n, err := s.repo.DismissAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("dismissing messages: %w", err)
	}
	return n, nil
}

func (s *Service) emit(ctx context.Context, level Level, text string, sticky bool) {
	msg := Message{
		ID:        uuid.NewString(),
		Level:     level,
		Text:      text,
		Sticky:    sticky,
		CreatedAt: time.Now().UTC(),
	}

	if s.logger != nil {
		logLevel := slog.LevelInfo
		if level == LevelError {
			logLevel = slog.LevelWarn
		}
		s.logger.Log(ctx, logLevel, "notification", "id", msg.ID, "level", level, "sticky", sticky, "text", text)
	}

	if sticky && s.repo != nil {
		if err := s.repo.Save(ctx, &msg); err != nil && s.logger != nil {
			s.logger.Error("failed to persist notification", "id", msg.ID, "error", err)
		}
	}

	s.mu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, l := range listeners {
		l(msg)
	}
}
