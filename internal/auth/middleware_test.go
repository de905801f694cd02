package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier struct {
	user  *User
	err   error
	calls int
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	verifier := &stubVerifier{}
	nextCalled := false
	handler := NewMiddleware(verifier, nil, zap.NewNop()).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/context", nil))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, nextCalled)
	require.Zero(t, verifier.calls)

	body := decodeError(t, rr)
	require.Equal(t, "Unauthorized", body["error"])
	require.NotEmpty(t, body["detail"])
}

func TestMiddlewareRejectsWrongScheme(t *testing.T) {
	verifier := &stubVerifier{}
	handler := NewMiddleware(verifier, nil, zap.NewNop()).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/context", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Zero(t, verifier.calls)
}

func TestMiddlewareRejectsFailedVerification(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("token revoked")}
	handler := NewMiddleware(verifier, nil, zap.NewNop()).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/context", nil)
	req.Header.Set("Authorization", "Bearer some-token")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, 1, verifier.calls)
	require.Equal(t, "token revoked", decodeError(t, rr)["detail"])
}

func TestMiddlewareAttachesIdentity(t *testing.T) {
	verifier := &stubVerifier{user: &User{ID: "user-7", Email: "u@example.com"}}

	var got *Identity
	handler := NewMiddleware(verifier, nil, zap.NewNop()).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := FromContext(r.Context())
		require.True(t, ok)
		got = identity
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("Authorization", "Bearer session-jwt")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	require.Equal(t, "user-7", got.User.ID)
	require.Equal(t, "session-jwt", got.Token)
}

func TestMiddlewareSkipperBypassesAuth(t *testing.T) {
	verifier := &stubVerifier{}
	skipper := func(r *http.Request) bool { return r.URL.Path == "/healthz" }
	handler := NewMiddleware(verifier, skipper, zap.NewNop()).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Zero(t, verifier.calls)
}
