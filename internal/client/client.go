package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"notedeck/internal/logging"
	"notedeck/internal/types"
)

const (
	defaultTimeout   = 10 * time.Second
	maxErrorBodySize = 64 << 10
	requestIDHeader  = "X-Request-ID"
)

// Client talks to the remote notes collection. The base URL names the
// collection itself, e.g. http://127.0.0.1:8000/api/notes/.
type Client struct {
	baseURL      string
	http         *http.Client
	logger       logging.Logger
	newRequestID func() string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http = &http.Client{Timeout: timeout, Transport: c.http.Transport}
		}
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: normalized,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:       logging.Nop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListNotes fetches the full collection. Malformed records are skipped.
func (c *Client) ListNotes(ctx context.Context) ([]types.Note, error) {
	var raw []json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL, nil, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("decode GET response: expected JSON array, got null")
	}
	notes, skipped := decodeNotes(raw)
	if skipped > 0 {
		c.logger.Warn("skipped malformed note records", logging.F("skipped", skipped), logging.F("received", len(raw)))
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, draft types.NoteDraft) error {
	return c.doJSON(ctx, http.MethodPost, c.baseURL, draft, nil)
}

func (c *Client) UpdateNote(ctx context.Context, id types.NoteID, draft types.NoteDraft) error {
	if id.IsZero() {
		return errors.New("note id is required")
	}
	return c.doJSON(ctx, http.MethodPut, c.noteURL(id), draft, nil)
}

func (c *Client) DeleteNote(ctx context.Context, id types.NoteID) error {
	if id.IsZero() {
		return errors.New("note id is required")
	}
	return c.doJSON(ctx, http.MethodDelete, c.noteURL(id), nil, nil)
}

func (c *Client) noteURL(id types.NoteID) string {
	return c.baseURL + url.PathEscape(strings.TrimSpace(id.String())) + "/"
}

func (c *Client) doJSON(ctx context.Context, method, target string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	requestID := c.newRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With(
		logging.F("request_id", requestID),
		logging.F("method", method),
		logging.F("path", req.URL.Path),
	)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", logging.F("error", err), logging.F("duration", time.Since(start)))
		return err
	}
	defer resp.Body.Close()
	log.Debug("request completed", logging.F("status", resp.StatusCode), logging.F("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp)
		log.Warn("request rejected", logging.F("status", resp.StatusCode), logging.F("error", apiErr.Message))
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("base url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid base url %q: scheme must be http or https", raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid base url %q: host is required", raw)
	}
	return strings.TrimRight(raw, "/") + "/", nil
}

func decodeAPIError(resp *http.Response) *APIError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if message := errorMessageFromBody(data); message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

func errorMessageFromBody(data []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil || len(payload) == 0 {
		return ""
	}
	for _, key := range []string{"error", "detail", "message"} {
		if value, ok := payload[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		switch value := payload[key].(type) {
		case string:
			parts = append(parts, key+": "+value)
		case []any:
			msgs := make([]string, 0, len(value))
			for _, entry := range value {
				if s, ok := entry.(string); ok {
					msgs = append(msgs, s)
				}
			}
			if len(msgs) > 0 {
				parts = append(parts, key+": "+strings.Join(msgs, " "))
			}
		}
	}
	return strings.Join(parts, "; ")
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
