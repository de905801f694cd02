// Package api exposes the HTTP handlers for the context and chat endpoints.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/axp8948/prodify/internal/auth"
)

// Summarizer builds a user's context digest scoped to their session token.
type Summarizer interface {
	Summarize(ctx context.Context, token, userID string) (string, error)
}

// Asker relays a question plus digest to the language model.
type Asker interface {
	Ask(ctx context.Context, summary, question string) (string, error)
}

// Handler coordinates HTTP requests with the aggregator and the relay.
type Handler struct {
	summarizer Summarizer
	asker      Asker
	logger     *zap.Logger
}

// NewHandler builds a Handler.
func NewHandler(summarizer Summarizer, asker Asker, logger *zap.Logger) *Handler {
	return &Handler{summarizer: summarizer, asker: asker, logger: logger}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/context", h.context)
	mux.HandleFunc("/api/chat", h.chat)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ContextResponse is the body for GET /api/context.
type ContextResponse struct {
	Summary string `json:"summary"`
}

// ChatRequest is the payload for POST /api/chat. Summary is optional: clients
// that already fetched /api/context pass it along to skip a rebuild.
type ChatRequest struct {
	Message string `json:"message"`
	Summary string `json:"summary,omitempty"`
}

// ChatResponse is the body for POST /api/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) context(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
		return
	}

	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.summarizer.Summarize(r.Context(), identity.Token, identity.User.ID)
	if err != nil {
		h.logger.Error("context aggregation failed",
			zap.String("user_id", identity.User.ID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ContextResponse{Summary: summary})
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
		return
	}

	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	question := strings.TrimSpace(req.Message)
	if question == "" {
		writeError(w, http.StatusBadRequest, "No question provided")
		return
	}

	summary := req.Summary
	if summary == "" {
		built, err := h.summarizer.Summarize(r.Context(), identity.Token, identity.User.ID)
		if err != nil {
			h.logger.Error("context aggregation failed",
				zap.String("user_id", identity.User.ID),
				zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		summary = built
	}

	reply, err := h.asker.Ask(r.Context(), summary, question)
	if err != nil {
		h.logger.Error("chat relay failed",
			zap.String("user_id", identity.User.ID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
