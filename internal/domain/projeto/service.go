package projeto

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
)

// Notification texts shown to the operator.
const (
	MessageCreated = "Projeto salvo com sucesso."
	MessageUpdated = "Projeto editado e salvo com sucesso."

	// errorTag identifies this service in the generic error text.
	errorTag = "pro.sev"
)

// Operation names reported in logs and in the generic error text.
const (
	OpList         = "getProjetos"
	OpListManagers = "getGerentes"
	OpGet          = "getProjeto"
	OpCreate       = "postProjeto"
	OpUpdate       = "putProjeto"
	OpDelete       = "deleteProjeto"
)

// Service wraps the projeto REST resources. Failures never surface as Go
// errors: they are logged, turned into an error notification and resolved
// to the operation's fallback value.
type Service struct {
	api            API
	notifier       Notifier
	logger         *slog.Logger
	silentListings bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithSilentListings stops List and ListManagers from notifying on failure;
// they still log and resolve to an empty slice.
func WithSilentListings() ServiceOption {
	return func(s *Service) {
		s.silentListings = true
	}
}

// NewService creates a new projeto service.
func NewService(api API, notifier Notifier, logger *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{api: api, notifier: notifier, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List fetches every projeto. Falls back to an empty slice.
func (s *Service) List(ctx context.Context) Result[[]Projeto] {
	var out []Projeto
	if err := s.api.Get(ctx, OpList, PathProjeto, &out); err != nil {
		return fail(ctx, s, OpList, err, []Projeto{}, !s.silentListings)
	}
	if out == nil {
		out = []Projeto{}
	}
	return Result[[]Projeto]{Value: out, Outcome: OutcomeSuccess}
}

// ListManagers fetches the users that may manage a projeto.
func (s *Service) ListManagers(ctx context.Context) Result[[]Usuario] {
	var out []Usuario
	if err := s.api.Get(ctx, OpListManagers, PathProjetoManager, &out); err != nil {
		return fail(ctx, s, OpListManagers, err, []Usuario{}, !s.silentListings)
	}
	if out == nil {
		out = []Usuario{}
	}
	return Result[[]Usuario]{Value: out, Outcome: OutcomeSuccess}
}

// GetByID fetches a single projeto. Falls back to nil.
func (s *Service) GetByID(ctx context.Context, id string) Result[*Projeto] {
	var out Projeto
	if err := s.api.Get(ctx, OpGet, resourcePath(PathProjeto, id), &out); err != nil {
		return fail[*Projeto](ctx, s, OpGet, err, nil, true)
	}
	return Result[*Projeto]{Value: &out, Outcome: OutcomeSuccess}
}

// Create submits a new projeto and returns the stored record.
func (s *Service) Create(ctx context.Context, p Projeto) Result[*Projeto] {
	var out Projeto
	if err := s.api.Post(ctx, OpCreate, PathProjeto, p, &out); err != nil {
		return fail[*Projeto](ctx, s, OpCreate, err, nil, true)
	}
	s.notifySuccess(ctx, MessageCreated)
	return Result[*Projeto]{Value: &out, Outcome: OutcomeSuccess, Message: MessageCreated}
}

// Update sends p to the resource selected by subtype, addressed by p.ID.
func (s *Service) Update(ctx context.Context, p Projeto, subtype Subtype) Result[*Projeto] {
	var out Projeto
	if err := s.api.Put(ctx, OpUpdate, resourcePath(subtype.Path(), p.ID), p, &out); err != nil {
		return fail[*Projeto](ctx, s, OpUpdate, err, nil, true)
	}
	s.notifySuccess(ctx, MessageUpdated)
	return Result[*Projeto]{Value: &out, Outcome: OutcomeSuccess, Message: MessageUpdated}
}

// Remove deletes a projeto. The backend answers with a message envelope
// whose text is forwarded verbatim as the success notification.
func (s *Service) Remove(ctx context.Context, id string) Result[*DeleteResponse] {
	var out DeleteResponse
	if err := s.api.Delete(ctx, OpDelete, resourcePath(PathProjeto, id), &out); err != nil {
		return fail[*DeleteResponse](ctx, s, OpDelete, err, nil, true)
	}
	s.notifySuccess(ctx, out.Message)
	return Result[*DeleteResponse]{Value: &out, Outcome: OutcomeSuccess, Message: out.Message}
}

// ErrorText derives the operator-facing text for a failed operation: the
// backend's error.message when present, otherwise a generic text naming
// the operation.
func ErrorText(operation string, err error) string {
	var bm BackendMessager
	if errors.As(err, &bm) {
		if msg := bm.BackendMessage(); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("Erro não identificado. [%s.%s]", errorTag, operation)
}

func fail[T any](ctx context.Context, s *Service, operation string, err error, fallback T, notify bool) Result[T] {
	if s.logger != nil {
		s.logger.Error("projeto request failed", "operation", operation, "error", err)
	}
	res := Result[T]{Value: fallback, Outcome: OutcomeFailure, Err: err}
	if notify {
		res.Message = ErrorText(operation, err)
		if s.notifier != nil {
			s.notifier.Error(ctx, res.Message, true)
		}
	}
	return res
}

func (s *Service) notifySuccess(ctx context.Context, text string) {
	if s.notifier != nil {
		s.notifier.Success(ctx, text, true)
	}
}

func resourcePath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
