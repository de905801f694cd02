package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Skipper allows callers to bypass authentication for specific requests.
type Skipper func(r *http.Request) bool

// Middleware provides HTTP middleware for bearer-token validation.
type Middleware struct {
	verifier Verifier
	skipper  Skipper
	logger   *zap.Logger
}

// NewMiddleware constructs a middleware with an optional skipper.
func NewMiddleware(verifier Verifier, skipper Skipper, logger *zap.Logger) Middleware {
	return Middleware{verifier: verifier, skipper: skipper, logger: logger}
}

// Wrap attaches authentication handling to an http.Handler. Requests that
// fail verification receive a 401 JSON body and never reach the next handler.
func (m Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipper != nil && m.skipper(r) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearer(r)
		if err != nil {
			m.reject(w, err)
			return
		}

		user, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			m.logger.Debug("token verification failed", zap.Error(err))
			m.reject(w, err)
			return
		}

		ctx := WithIdentity(r.Context(), &Identity{User: *user, Token: token})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m Middleware) reject(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":  "Unauthorized",
		"detail": err.Error(),
	})
}

func extractBearer(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", ErrInvalidToken
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
