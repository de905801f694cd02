// Package relay forwards chat questions, together with the user's context
// digest, to the Gemini generateContent endpoint and extracts the reply.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/axp8948/prodify/internal/observability"
)

const (
	persona   = "You are Prodix, a friendly productivity assistant."
	dataLabel = "Here is the user's recent data:"
	asksLabel = "User asks:"

	// FallbackReply is returned when the model answers without a usable
	// candidate. It is a degraded success, not an error.
	FallbackReply = "Sorry, I couldn't generate a response."
)

// Config holds the relay's connection parameters. BaseURL is injectable so
// tests can point at a local server.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Relay performs single-turn completions against the Gemini API.
type Relay struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New constructs a Relay.
func New(cfg Config, logger *zap.Logger) *Relay {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Relay{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content content `json:"content"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Ask sends one completion request built from the digest and the question and
// returns the reply text. No retries: a failed call fails the request.
func (r *Relay) Ask(ctx context.Context, summary, question string) (string, error) {
	prompt := strings.Join([]string{persona, dataLabel, summary, asksLabel, question}, "\n\n")

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", r.baseURL, r.model, r.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	observability.RecordRelayRequest()

	resp, err := r.httpClient.Do(req)
	if err != nil {
		observability.RecordRelayFailure()
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.RecordRelayFailure()
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	// Error details arrive as a JSON body regardless of status, so the body
	// is decoded before the status is considered.
	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		observability.RecordRelayFailure()
		return "", fmt.Errorf("parse gemini response (status %d): %w", resp.StatusCode, err)
	}

	if reply, ok := candidateText(decoded); ok {
		return reply, nil
	}

	if decoded.Error != nil && decoded.Error.Message != "" {
		r.logger.Warn("gemini returned an error payload",
			zap.Int("code", decoded.Error.Code),
			zap.String("status", decoded.Error.Status))
		observability.RecordRelayFallback()
		return decoded.Error.Message, nil
	}

	r.logger.Warn("gemini response had no usable candidate", zap.Int("http_status", resp.StatusCode))
	observability.RecordRelayFallback()
	return FallbackReply, nil
}

func candidateText(resp generateResponse) (string, bool) {
	if len(resp.Candidates) == 0 {
		return "", false
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return "", false
	}
	return parts[0].Text, true
}
