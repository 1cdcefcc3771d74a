package transport

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type subjectKey struct{}

// TokenVerifier resolves the caller behind a bearer token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// StaticToken accepts a single shared token and names its caller "operator".
type StaticToken string

// Verify compares token against the configured one in constant time.
func (s StaticToken) Verify(_ context.Context, token string) (string, error) {
	if s == "" || subtle.ConstantTimeCompare([]byte(s), []byte(token)) != 1 {
		return "", ErrUnauthorized
	}
	return "operator", nil
}

// SubjectFromContext returns the authenticated caller, if present.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey{}).(string)
	return subject, ok
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			subject, err := verifier.Verify(r.Context(), token)
			if err != nil || subject == "" {
				writeError(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
