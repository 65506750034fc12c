// internal/api/client.go
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

	"github.com/sirupsen/logrus"

	"github.com/your-org/easyway-storefront/internal/pkg/logger"
)

// StatusSuccessful is the envelope status of a successful call
const StatusSuccessful = "successful"

// TokenSource supplies the bearer token attached to every request
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource
type TokenSourceFunc func(ctx context.Context) (string, error)

// AccessToken calls f
func (f TokenSourceFunc) AccessToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// Options configures a Client
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

// Client talks to the EasyWay REST backend. A Client carries no per-user state;
// callers bind a token source and unauthorized hook with Session.
type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

// NewClient creates a backend client
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	return &Client{baseURL: base, http: httpClient, log: log}, nil
}

// Session binds the client to one device's credentials
func (c *Client) Session(tokens TokenSource, onUnauthorized func(ctx context.Context)) *Session {
	return &Session{client: c, tokens: tokens, onUnauthorized: onUnauthorized}
}

// Session is a Client bound to a token source. It is what the endpoint methods hang off.
type Session struct {
	client         *Client
	tokens         TokenSource
	onUnauthorized func(ctx context.Context)
}

// envelope is the response wrapper used by every backend endpoint
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Results json.RawMessage `json:"results"`
}

func (s *Session) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	c := s.client

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if s.tokens != nil {
		token, err := s.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to read access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"latency": time.Since(started).String(),
	}).Debug("Backend call")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if s.onUnauthorized != nil {
			s.onUnauthorized(ctx)
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Message: messageFrom(raw, resp.Status)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	if env.Status != StatusSuccessful {
		return &EnvelopeError{Status: env.Status, Message: env.Message}
	}

	if out == nil {
		return nil
	}
	if len(env.Results) == 0 || string(env.Results) == "null" {
		return ErrEmptyResults
	}
	if err := json.Unmarshal(env.Results, out); err != nil {
		return fmt.Errorf("failed to decode %s %s results: %w", method, path, err)
	}
	return nil
}

// first unwraps results[0], the shape used by single-object endpoints
func first[T any](results []T) (T, error) {
	var zero T
	if len(results) == 0 {
		return zero, ErrEmptyResults
	}
	return results[0], nil
}

func messageFrom(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallback
}

// IsUnauthorized reports whether err came from a 401
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
