// Package appwrite provides a minimal REST client for the two Appwrite
// operations this service needs: listing documents and resolving the account
// behind a client-issued JWT. Writes stay with the SPA and the vendor SDK.
package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Client talks to an Appwrite deployment. The zero JWT client performs
// unauthenticated calls; use WithJWT to scope a copy to one request's token.
type Client struct {
	endpoint   string
	project    string
	jwt        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient constructs a Client for the given deployment endpoint and project.
func NewClient(endpoint, project string, logger *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		project:  project,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// WithJWT returns a copy of the client scoped to the supplied token. The
// receiver is never mutated, so one base client can serve concurrent requests.
func (c *Client) WithJWT(token string) *Client {
	scoped := *c
	scoped.jwt = token
	return &scoped
}

// DocumentList is the wire shape of an Appwrite document listing. Documents
// are left raw so callers can decode them into their own types.
type DocumentList struct {
	Total     int               `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}

// Account is the identity behind a session JWT.
type Account struct {
	ID    string `json:"$id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Error is a non-2xx response from Appwrite.
type Error struct {
	StatusCode int
	Message    string `json:"message"`
	Type       string `json:"type"`
}

func (e *Error) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("appwrite: %s (%s)", e.Message, e.Type)
	}
	return fmt.Sprintf("appwrite: %s", e.Message)
}

// ListDocuments fetches documents from one collection, applying the supplied
// queries (filter, order, limit) server-side.
func (c *Client) ListDocuments(ctx context.Context, databaseID, collectionID string, queries ...Query) (*DocumentList, error) {
	endpoint := fmt.Sprintf("%s/databases/%s/collections/%s/documents", c.endpoint, databaseID, collectionID)

	params := url.Values{}
	for _, q := range queries {
		encoded, err := q.encode()
		if err != nil {
			return nil, fmt.Errorf("encode query: %w", err)
		}
		params.Add("queries[]", encoded)
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var list DocumentList
	if err := c.do(ctx, http.MethodGet, endpoint, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetAccount resolves the account for the client's JWT.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.do(ctx, http.MethodGet, c.endpoint+"/account", &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.project)
	if c.jwt != "" {
		req.Header.Set("X-Appwrite-JWT", c.jwt)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("appwrite request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read appwrite response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: string(body)}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		c.logger.Debug("appwrite call rejected",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode appwrite response: %w", err)
	}
	return nil
}
