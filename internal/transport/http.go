package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpggio/projeto/internal/domain/message"
)

// MessageService exposes pending notifications over HTTP.
type MessageService interface {
	Pending(ctx context.Context) ([]message.Message, error)
	Dismiss(ctx context.Context, id string) error
	DismissAll(ctx context.Context) (int64, error)
}

// Options wires the HTTP surface.
type Options struct {
	// MCP serves the streamable MCP endpoint.
	MCP      http.Handler
	Messages MessageService
	// Gatherer backs /metrics; nil disables the route.
	Gatherer prometheus.Gatherer
	// Auth guards everything except /health when set.
	Auth   func(http.Handler) http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	messages MessageService
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(opts.Logger))

	srv := &Server{messages: opts.Messages, logger: opts.Logger}

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}
		if opts.MCP != nil {
			r.Handle("/mcp", opts.MCP)
		}
		if opts.Gatherer != nil {
			r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
		}
		if opts.Messages != nil {
			r.Get("/messages", srv.handleListMessages)
			r.Delete("/messages", srv.handleDismissAll)
			r.Delete("/messages/{id}", srv.handleDismiss)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	pending, err := s.messages.Pending(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if pending == nil {
		pending = []message.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": pending})
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	err := s.messages.Dismiss(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, message.ErrMessageNotFound):
		writeError(w, http.StatusNotFound, "message not found")
	case errors.Is(err, message.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) handleDismissAll(w http.ResponseWriter, r *http.Request) {
	n, err := s.messages.DismissAll(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"dismissed": n})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	if s.logger != nil {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
