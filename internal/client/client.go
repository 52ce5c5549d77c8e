// Package client is the operator-side caller of the prediction API. It owns
// the retry policy: connectivity failures are retried a fixed number of times
// with a fixed delay; any HTTP response, success or error, is final.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"insurecost/pkg/types"
)

const (
	DefaultAttempts = 3
	DefaultDelay    = 2 * time.Second
	DefaultTimeout  = 10 * time.Second
	PredictPath     = "/predict_insurance_charge"
)

// ErrMalformedResponse is returned when a 200 response lacks either field of
// the success shape.
var ErrMalformedResponse = errors.New("prediction result format invalid: missing 'predicted_charge' or 'risk_category'")

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Kind       types.ErrorKind
	Message    string
	Fields     []types.FieldError
	// Body is the raw payload, kept for display when it is not JSON.
	Body string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.Field + ": " + f.Message
		}
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
}

// Client calls the prediction endpoint.
type Client struct {
	baseURL  string
	http     *http.Client
	attempts int
	delay    time.Duration
	log      zerolog.Logger
	notify   func(attempt int, err error, wait time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (10s timeout).
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithRetry sets the total number of attempts and the fixed delay between them.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if delay >= 0 {
			c.delay = delay
		}
	}
}

// WithLogger installs a logger for retry diagnostics.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// WithNotify registers a callback invoked before each retry with the 1-based
// number of the attempt that failed.
func WithNotify(fn func(attempt int, err error, wait time.Duration)) Option {
	return func(c *Client) { c.notify = fn }
}

// New returns a Client for the service at baseURL, e.g. http://127.0.0.1:8000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		attempts: DefaultAttempts,
		delay:    DefaultDelay,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Predict submits rec and returns the classified result. Validation,
// unavailability and internal errors come back as *APIError on the first
// attempt; only connectivity failures are retried.
func (c *Client) Predict(ctx context.Context, rec types.PolicyholderRecord) (types.PredictionResult, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return types.PredictionResult{}, err
	}
	reqID := uuid.NewString()
	var (
		out     types.PredictionResult
		attempt int
	)
	op := func() error {
		attempt++
		res, err := c.post(ctx, body, reqID)
		if err != nil {
			if ctx.Err() == nil && isConnectivityError(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		out = res
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.delay), uint64(c.attempts-1)), ctx)
	err = backoff.RetryNotify(op, policy, func(err error, wait time.Duration) {
		c.log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Str("request_id", reqID).Msg("connection failed, retrying")
		if c.notify != nil {
			c.notify(attempt, err, wait)
		}
	})
	if err != nil {
		return types.PredictionResult{}, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, body []byte, reqID string) (types.PredictionResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PredictPath, bytes.NewReader(body))
	if err != nil {
		return types.PredictionResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	resp, err := c.http.Do(req)
	if err != nil {
		return types.PredictionResult{}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return types.PredictionResult{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return types.PredictionResult{}, decodeAPIError(resp.StatusCode, data)
	}
	return decodeResult(data)
}

func decodeAPIError(status int, data []byte) *APIError {
	e := &APIError{StatusCode: status, Body: string(data)}
	var payload types.ErrorResponse
	if err := json.Unmarshal(data, &payload); err == nil {
		e.Kind = payload.Kind
		e.Message = payload.Error
		e.Fields = payload.Fields
	}
	return e
}

func decodeResult(data []byte) (types.PredictionResult, error) {
	var raw struct {
		PredictedCharge *float64 `json:"predicted_charge"`
		RiskCategory    *string  `json:"risk_category"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.PredictionResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.PredictedCharge == nil || raw.RiskCategory == nil {
		return types.PredictionResult{}, ErrMalformedResponse
	}
	tier := types.RiskTier(*raw.RiskCategory)
	if !tier.Valid() {
		return types.PredictionResult{}, fmt.Errorf("%w: unknown risk_category %q", ErrMalformedResponse, tier)
	}
	return types.PredictionResult{PredictedCharge: *raw.PredictedCharge, RiskCategory: tier}, nil
}

// isConnectivityError reports failures to reach the server at all: refused or
// failed dials and connections reset before a response arrived.
func isConnectivityError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
