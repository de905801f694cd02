package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/axp8948/prodify/internal/appwrite"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "user-1",
		"exp": expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("appwrite-holds-the-real-key"))
	require.NoError(t, err)
	return token
}

func TestPrecheckAcceptsUnexpiredToken(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, precheck(token, time.Now()))
}

func TestPrecheckRejectsExpiredToken(t *testing.T) {
	token := signedToken(t, time.Now().Add(-time.Minute))
	err := precheck(token, time.Now())
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestPrecheckRejectsGarbage(t *testing.T) {
	err := precheck("definitely-not-a-jwt", time.Now())
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAppwriteVerifierResolvesAccount(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))

	var gotJWT, gotProject string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/account", r.URL.Path)
		gotJWT = r.Header.Get("X-Appwrite-JWT")
		gotProject = r.Header.Get("X-Appwrite-Project")
		_, _ = w.Write([]byte(`{"$id":"user-1","name":"Ana","email":"ana@example.com"}`))
	}))
	defer server.Close()

	verifier := NewAppwriteVerifier(appwrite.NewClient(server.URL, "proj", zap.NewNop()))
	user, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, &User{ID: "user-1", Name: "Ana", Email: "ana@example.com"}, user)
	require.Equal(t, token, gotJWT)
	require.Equal(t, "proj", gotProject)
}

func TestAppwriteVerifierRejectsExpiredWithoutCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	verifier := NewAppwriteVerifier(appwrite.NewClient(server.URL, "proj", zap.NewNop()))
	_, err := verifier.Verify(context.Background(), signedToken(t, time.Now().Add(-time.Hour)))
	require.ErrorIs(t, err, ErrTokenExpired)
	require.Zero(t, calls)
}

func TestAppwriteVerifierSurfacesRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid token","type":"user_jwt_invalid","code":401}`))
	}))
	defer server.Close()

	verifier := NewAppwriteVerifier(appwrite.NewClient(server.URL, "proj", zap.NewNop()))
	_, err := verifier.Verify(context.Background(), signedToken(t, time.Now().Add(time.Hour)))
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Contains(t, err.Error(), "Invalid token")
}
