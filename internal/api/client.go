// Package api talks to the quick answers REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/quickanswers/internal/models"
	"github.com/thenoetrevino/quickanswers/internal/types"
)

const (
	resourcePath    = "/quickAnswers"
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 4 << 10
)

// Client wraps the /quickAnswers endpoints.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	newID      func() string
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithTimeout bounds each request. Zero or negative means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout < 0 {
			timeout = 0
		}
		c.httpClient.Timeout = timeout
	}
}

// WithRequestIDs overrides how request ids are generated (useful for tests).
func WithRequestIDs(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewClient constructs a client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{},
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("quick answers api: http %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("quick answers api: http %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, models.ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == models.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Get fetches one quick answer.
func (c *Client) Get(ctx context.Context, id types.QuickAnswerID) (*models.QuickAnswer, error) {
	if id.IsZero() {
		return nil, models.ErrMissingID
	}
	var out models.QuickAnswer
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get quick answer %s: %w", id, err)
	}
	return &out, nil
}

// Create stores a new quick answer and returns the server's record.
func (c *Client) Create(ctx context.Context, input models.QuickAnswerInput) (*models.QuickAnswer, error) {
	var out models.QuickAnswer
	if err := c.do(ctx, http.MethodPost, resourcePath, input, &out); err != nil {
		return nil, fmt.Errorf("create quick answer: %w", err)
	}
	return &out, nil
}

// Update replaces shortcut and message of an existing quick answer.
func (c *Client) Update(ctx context.Context, id types.QuickAnswerID, input models.QuickAnswerInput) (*models.QuickAnswer, error) {
	if id.IsZero() {
		return nil, models.ErrMissingID
	}
	var out models.QuickAnswer
	if err := c.do(ctx, http.MethodPut, itemPath(id), input, &out); err != nil {
		return nil, fmt.Errorf("update quick answer %s: %w", id, err)
	}
	if out.ID.IsZero() {
		out.ID = id
	}
	return &out, nil
}

// List returns every quick answer visible to the token.
// Both a bare array and a {"records": [...]} envelope are accepted.
func (c *Client) List(ctx context.Context) ([]models.QuickAnswer, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, resourcePath, nil, &raw); err != nil {
		return nil, fmt.Errorf("list quick answers: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []models.QuickAnswer{}, nil
	}

	var list []models.QuickAnswer
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("list quick answers: decode: %w", err)
		}
		return list, nil
	}

	var envelope struct {
		Records []models.QuickAnswer `json:"records"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("list quick answers: decode: %w", err)
	}
	if envelope.Records == nil {
		return []models.QuickAnswer{}, nil
	}
	return envelope.Records, nil
}

func itemPath(id types.QuickAnswerID) string {
	return resourcePath + "/" + url.PathEscape(id.String())
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set(requestIDHeader, c.newID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = data
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("empty response body")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls "message" or "error" out of a JSON error body,
// falling back to the trimmed body text.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(body.Error); msg != "" {
			return msg
		}
	}
	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}
