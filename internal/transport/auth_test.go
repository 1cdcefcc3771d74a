package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type testVerifier struct {
	tokens map[string]string
	err    error
}

func (v *testVerifier) Verify(_ context.Context, token string) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	subject, ok := v.tokens[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return subject, nil
}

func TestAuthMiddleware(t *testing.T) {
	verifier := &testVerifier{tokens: map[string]string{"token": "ana"}}

	handler := AuthMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := SubjectFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "ana", subject)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		header string
		err    error
	}{
		{name: "missing", header: ""},
		{name: "unknown", header: "Bearer other"},
		{name: "verifier error", header: "Bearer token", err: errors.New("boom")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &testVerifier{tokens: map[string]string{"token": "ana"}, err: tc.err}
			handler := AuthMiddleware(verifier)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("handler must not run")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Body.String(), `"message"`)
		})
	}
}

func TestStaticToken(t *testing.T) {
	subject, err := StaticToken("s3cret").Verify(context.Background(), "s3cret")
	require.NoError(t, err)
	require.Equal(t, "operator", subject)

	_, err = StaticToken("s3cret").Verify(context.Background(), "guess")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = StaticToken("").Verify(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthorized)
}
