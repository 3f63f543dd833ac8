package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"verigate/pkg/apierror"
	"verigate/pkg/auth"
	"verigate/pkg/config"
	"verigate/pkg/logging"
)

// TokenSource is the capability the dispatcher needs from the token manager:
// a valid token, the local scope verdict, and invalidation after a confirmed
// 401. *auth.Manager satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (*auth.Token, error)
	CheckScope(required auth.Requirement) error
	Invalidate()
}

// Request describes one authenticated call. It is ephemeral, constructed per
// call by the endpoint methods.
type Request struct {
	Method   string
	Endpoint string

	// Body is JSON-encoded when non-nil.
	Body interface{}

	// Query is appended to the endpoint URL.
	Query url.Values

	// Require names the permission actions that may satisfy this call.
	Require auth.Requirement
}

// Dispatcher executes authenticated calls against the gateway and maps every
// outcome to either a success Response or exactly one taxonomy error. The
// only built-in retry is the single 401-triggered token refresh; rate-limit
// and network failures surface immediately so callers can apply their own
// backoff policy.
type Dispatcher struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	tokens     TokenSource
}

// DispatcherOption configures the dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherHTTPClient sets a custom HTTP client for resource calls.
func WithDispatcherHTTPClient(httpClient *http.Client) DispatcherOption {
	return func(d *Dispatcher) {
		d.httpClient = httpClient
	}
}

// NewDispatcher creates a dispatcher bound to the given token source.
func NewDispatcher(cfg config.Config, tokens TokenSource, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		baseURL:    cfg.BaseURL,
		timeout:    cfg.RequestTimeout,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Do executes one authenticated call: token, scope pre-check, transport
// call, classification. The returned Response always has Success set to
// true; every other outcome is an error.
func (d *Dispatcher) Do(ctx context.Context, req Request) (*Response, error) {
	reqID := uuid.NewString()[:8]
	target := d.baseURL + req.Endpoint

	logging.Debug("Transport", "[%s] %s %s query=%v", reqID, req.Method, target, req.Query)

	token, err := d.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	// Pre-flight: a scope failure never reaches the network.
	if err := d.tokens.CheckScope(req.Require); err != nil {
		return nil, err
	}

	start := time.Now()
	statusCode, body, err := d.send(ctx, req, token.AccessToken)
	if err != nil {
		return nil, err
	}
	logging.Debug("Transport", "[%s] %s %s -> %d (%.2fs)", reqID, req.Method, target, statusCode, time.Since(start).Seconds())

	// A 401 means the gateway no longer accepts the token. Refresh once and
	// retry; a second 401 is an authentication failure.
	if statusCode == http.StatusUnauthorized {
		logging.Warn("Transport", "[%s] Received 401 for %s %s, refreshing token and retrying", reqID, req.Method, target)
		d.tokens.Invalidate()

		token, err = d.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}

		start = time.Now()
		statusCode, body, err = d.send(ctx, req, token.AccessToken)
		if err != nil {
			return nil, err
		}
		logging.Debug("Transport", "[%s] %s %s -> %d (%.2fs) [retry after 401]",
			reqID, req.Method, target, statusCode, time.Since(start).Seconds())

		if statusCode == http.StatusUnauthorized {
			return nil, &apierror.Error{
				Kind:       apierror.KindAuthentication,
				Message:    "request unauthorized after token refresh",
				StatusCode: statusCode,
				Body:       body,
			}
		}
	}

	return d.classify(reqID, req, statusCode, body)
}

// send performs a single HTTP exchange and maps transport-level failures to
// network errors. It returns the status and the fully read body.
func (d *Dispatcher) send(ctx context.Context, req Request, accessToken string) (int, []byte, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	target := d.baseURL + req.Endpoint
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, d.networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, d.networkError(err)
	}

	return resp.StatusCode, body, nil
}

// networkError classifies a transport failure as timeout or connection.
func (d *Dispatcher) networkError(err error) error {
	if isTimeout(err) {
		return &apierror.Error{
			Kind:    apierror.KindNetwork,
			Message: "request timed out",
			Reason:  apierror.ReasonTimeout,
			Err:     err,
		}
	}
	return &apierror.Error{
		Kind:    apierror.KindNetwork,
		Message: "connection failed",
		Reason:  apierror.ReasonConnection,
		Err:     err,
	}
}

// classify maps the HTTP status and body onto the error taxonomy, or builds
// the success response.
func (d *Dispatcher) classify(reqID string, req Request, statusCode int, body []byte) (*Response, error) {
	target := d.baseURL + req.Endpoint

	switch {
	case statusCode == http.StatusTooManyRequests:
		logging.Warn("Transport", "[%s] Rate limit exceeded for %s %s", reqID, req.Method, target)
		return nil, &apierror.Error{
			Kind:       apierror.KindRateLimit,
			Message:    "API rate limit exceeded",
			StatusCode: statusCode,
			Reason:     "too many requests",
			Body:       body,
		}

	case statusCode == http.StatusBadRequest:
		norm := normalizeResponse(body, statusCode)
		message := norm.message
		if message == "" || message == "Request processed" {
			message = "validation failed"
		}
		logging.Warn("Transport", "[%s] Validation error for %s %s: %s", reqID, req.Method, target, message)
		return nil, &apierror.Error{
			Kind:       apierror.KindValidation,
			Message:    message,
			StatusCode: statusCode,
			Body:       body,
		}

	case statusCode >= 500:
		logging.Error("Transport", nil, "[%s] Server error %d for %s %s", reqID, statusCode, req.Method, target)
		return nil, &apierror.Error{
			Kind:       apierror.KindNetwork,
			Message:    "server error occurred",
			StatusCode: statusCode,
			Reason:     apierror.ReasonServerError,
			Body:       body,
		}
	}

	norm := normalizeResponse(body, statusCode)
	if !norm.success {
		message := norm.message
		if message == "" {
			message = "API request failed"
		}
		logging.Warn("Transport", "[%s] API error for %s %s: %s", reqID, req.Method, target, message)
		return nil, &apierror.Error{
			Kind:       apierror.KindAPI,
			Message:    message,
			StatusCode: statusCode,
			Code:       norm.code,
			Body:       body,
		}
	}

	logging.Debug("Transport", "[%s] %s %s succeeded: %s", reqID, req.Method, target, norm.message)
	return &Response{
		Success:    true,
		Code:       norm.code,
		StatusCode: statusCode,
		Message:    norm.message,
		Data:       norm.data,
		LogID:      norm.logID,
		Errors:     norm.errors,
	}, nil
}

// isTimeout walks the error chain looking for a timeout verdict from the net
// or url layers.
func isTimeout(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	for e := err; e != nil; {
		if ne, ok := e.(net.Error); ok && ne.Timeout() {
			return true
		}
		if u, ok := e.(interface{ Unwrap() error }); ok {
			e = u.Unwrap()
		} else {
			break
		}
	}

	return errors.Is(err, context.DeadlineExceeded)
}
