package testserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/projeto/internal/domain/projeto"
)

// Request is a call observed by the fake backend.
type Request struct {
	Method    string
	Path      string
	Body      []byte
	Header    http.Header
	RequestID string
}

// Failure is a canned error response.
type Failure struct {
	Status int
	Body   string
}

// Backend is an in-memory projeto API served over httptest. Routes live
// under /api like the real backend.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	projetos map[string]projeto.Projeto
	managers []projeto.Usuario
	requests []Request
	failures map[string]Failure
	nextID   int
}

// New starts a fake backend and closes it when the test ends.
func New(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		projetos: make(map[string]projeto.Projeto),
		failures: make(map[string]Failure),
	}

	r := chi.NewRouter()
	r.Use(b.record)
	r.Route("/api", func(r chi.Router) {
		r.Get("/projeto", b.handleList)
		r.Get("/projeto/manager", b.handleManagers)
		r.Get("/projeto/{id}", b.handleGet)
		r.Post("/projeto", b.handleCreate)
		r.Put("/projeto/{id}", b.handleUpdate)
		r.Put("/projeto-equipe/{id}", b.handleUpdate)
		r.Put("/projeto-indicador/{id}", b.handleUpdate)
		r.Put("/projeto-indicador-fase/{id}", b.handleUpdate)
		r.Delete("/projeto/{id}", b.handleDelete)
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// BaseURL is the API root to hand to a client.
func (b *Backend) BaseURL() string {
	return b.Server.URL + "/api"
}

// Seed stores projetos as if they had been created before.
func (b *Backend) Seed(projetos ...projeto.Projeto) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range projetos {
		b.projetos[p.ID] = p
	}
}

// SetManagers sets the manager listing.
func (b *Backend) SetManagers(managers ...projeto.Usuario) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.managers = managers
}

// Fail makes every request matching "METHOD /path" answer with f.
func (b *Backend) Fail(method, path string, f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = f
}

// Requests returns the requests observed so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Projeto returns a stored projeto.
func (b *Backend) Projeto(id string) (projeto.Projeto, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.projetos[id]
	return p, ok
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
		}

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			Body:      body,
			Header:    r.Header.Clone(),
			RequestID: r.Header.Get("X-Request-Id"),
		})
		f, fail := b.failures[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if fail {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.Status)
			_, _ = w.Write([]byte(f.Body))
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleList(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	list := make([]projeto.Projeto, 0, len(b.projetos))
	for _, p := range b.projetos {
		list = append(list, p)
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (b *Backend) handleManagers(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	managers := append([]projeto.Usuario{}, b.managers...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, managers)
}

func (b *Backend) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := b.Projeto(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("Projeto não encontrado."))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) handleCreate(w http.ResponseWriter, r *http.Request) {
	var p projeto.Projeto
	if err := decodeBody(r, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Corpo inválido."))
		return
	}

	b.mu.Lock()
	b.nextID++
	p.ID = fmt.Sprintf("p%d", b.nextID)
	b.projetos[p.ID] = p
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, p)
}

func (b *Backend) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p projeto.Projeto
	if err := decodeBody(r, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Corpo inválido."))
		return
	}

	b.mu.Lock()
	_, ok := b.projetos[id]
	if ok {
		p.ID = id
		b.projetos[id] = p
	}
	b.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("Projeto não encontrado."))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	_, ok := b.projetos[id]
	delete(b.projetos, id)
	b.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("Projeto não encontrado."))
		return
	}
	writeJSON(w, http.StatusOK, projeto.DeleteResponse{Message: "Projeto removido com sucesso."})
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func errorBody(msg string) map[string]any {
	return map[string]any{"error": map[string]string{"message": msg}}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
