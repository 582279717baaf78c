// Package client is the Go SDK for the contract management API. It covers
// the full intake pipeline: document upload with progress and fallback,
// analysis polling, disposition of analyzed documents, and the contract
// creation wizard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultUploadTimeout = 2 * time.Minute
	maxUploadTimeout     = 5 * time.Minute
	defaultPollInterval  = 2 * time.Second
	defaultMaxWait       = 2 * time.Minute
)

// Config holds client configuration
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.com"
	BaseURL string
	// Token is the bearer token sent on every request
	Token string
	// TenantID is sent as X-Tenant-ID when no token carries one
	TenantID string
	// HTTPClient overrides the default http.Client
	HTTPClient *http.Client
	// UploadTimeout bounds each upload attempt (default 2m, capped at 5m)
	UploadTimeout time.Duration
	// PollInterval is the fixed analysis polling interval (default 2s)
	PollInterval time.Duration
	// MaxWait bounds WaitForAnalysis (default 2m)
	MaxWait time.Duration
	// Confidence buckets extraction scores for display
	Confidence ConfidencePolicy
}

// Client is a contract management API client. It is safe for concurrent
// use; construct once per session and pass it around explicitly.
type Client struct {
	baseURL       string
	token         string
	tenantID      string
	http          *http.Client
	uploadTimeout time.Duration
	pollInterval  time.Duration
	maxWait       time.Duration
	confidence    ConfidencePolicy
}

// New creates a new API client
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	uploadTimeout := cfg.UploadTimeout
	if uploadTimeout <= 0 {
		uploadTimeout = defaultUploadTimeout
	}
	if uploadTimeout > maxUploadTimeout {
		uploadTimeout = maxUploadTimeout
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	maxWait := cfg.MaxWait
	if maxWait <= 0 {
		maxWait = defaultMaxWait
	}
	confidence := cfg.Confidence
	if confidence.High == 0 && confidence.Medium == 0 {
		confidence = DefaultConfidencePolicy()
	}
	return &Client{
		baseURL:       cfg.BaseURL,
		token:         cfg.Token,
		tenantID:      cfg.TenantID,
		http:          httpClient,
		uploadTimeout: uploadTimeout,
		pollInterval:  pollInterval,
		maxWait:       maxWait,
		confidence:    confidence,
	}
}

// envelope is the standard API response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Code        string       `json:"code"`
	Message     string       `json:"message"`
	RequestID   string       `json:"request_id"`
	FieldErrors []FieldError `json:"fieldErrors"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.tenantID != "" {
		req.Header.Set("X-Tenant-ID", c.tenantID)
	}
	return req, nil
}

// doJSON sends a JSON request and decodes the data field of the response
// envelope into out (when out is non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(req.Context(), err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerate non-JSON error bodies from proxies
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode >= 400 {
		return errorFromStatus(resp.StatusCode, &env)
	}

	if out != nil {
		if env.Data == nil {
			return &ServerError{StatusCode: resp.StatusCode, Message: "response carried no data"}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

func errorFromStatus(status int, env *envelope) error {
	code := ""
	message := http.StatusText(status)
	var fieldErrors []FieldError
	if env.Error != nil {
		code = env.Error.Code
		if env.Error.Message != "" {
			message = env.Error.Message
		}
		fieldErrors = env.Error.FieldErrors
	}

	switch {
	case status == http.StatusUnauthorized:
		return &AuthError{Message: message}
	case status == http.StatusNotFound:
		return &NotFoundError{Message: message}
	case status == http.StatusConflict:
		return &ConflictError{Code: code, Message: message}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &ValidationError{Code: code, Message: message, FieldErrors: fieldErrors}
	case status == http.StatusRequestTimeout:
		return &TimeoutError{Message: message}
	default:
		return &ServerError{StatusCode: status, Code: code, Message: message}
	}
}

func classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return &TimeoutError{Message: "request timed out"}
	}
	if ctx.Err() == context.Canceled {
		return ctx.Err()
	}
	return &NetworkError{Err: err}
}
