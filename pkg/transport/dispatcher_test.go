package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"verigate/pkg/apierror"
	"verigate/pkg/auth"
	"verigate/pkg/config"
)

// fakeTokens is a scripted TokenSource. Each Token call hands out the next
// access token in sequence so the 401-retry path can be observed.
type fakeTokens struct {
	tokenCalls  int32
	invalidates int32
	scopeErr    error
	actions     []string
}

func (f *fakeTokens) Token(ctx context.Context) (*auth.Token, error) {
	n := atomic.AddInt32(&f.tokenCalls, 1)
	return &auth.Token{
		AccessToken: fmt.Sprintf("tok%d", n),
		ExpiresAt:   time.Now().Add(time.Hour),
		APIActions:  f.actions,
	}, nil
}

func (f *fakeTokens) CheckScope(required auth.Requirement) error {
	if f.scopeErr != nil {
		return f.scopeErr
	}
	if !required.SatisfiedBy(f.actions) {
		return apierror.InsufficientScope(required, f.actions)
	}
	return nil
}

func (f *fakeTokens) Invalidate() {
	atomic.AddInt32(&f.invalidates, 1)
}

func newTestDispatcher(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *Dispatcher {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Config{
		BaseURL:        srv.URL,
		RequestTimeout: 2 * time.Second,
	}
	return NewDispatcher(cfg, tokens)
}

func TestDispatcher_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		expectedKind   apierror.Kind
		expectedReason string
	}{
		{
			name:         "400 maps to validation",
			status:       http.StatusBadRequest,
			body:         `{"message":"id is required"}`,
			expectedKind: apierror.KindValidation,
		},
		{
			name:         "429 maps to rate limit",
			status:       http.StatusTooManyRequests,
			body:         `{"message":"slow down"}`,
			expectedKind: apierror.KindRateLimit,
		},
		{
			name:           "500 maps to network server_error",
			status:         http.StatusInternalServerError,
			body:           `{}`,
			expectedKind:   apierror.KindNetwork,
			expectedReason: apierror.ReasonServerError,
		},
		{
			name:           "503 maps to network server_error",
			status:         http.StatusServiceUnavailable,
			body:           ``,
			expectedKind:   apierror.KindNetwork,
			expectedReason: apierror.ReasonServerError,
		},
		{
			name:         "2xx with business failure maps to api error",
			status:       http.StatusOK,
			body:         `{"responseCode":"ERROR","message":"record not found","logId":"L1"}`,
			expectedKind: apierror.KindAPI,
		},
		{
			name:         "2xx with explicit success=false maps to api error",
			status:       http.StatusOK,
			body:         `{"success":false,"code":"NOT_FOUND","message":"no match"}`,
			expectedKind: apierror.KindAPI,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}, &fakeTokens{})

			_, err := d.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})
			apiErr, ok := apierror.As(err)
			if !ok {
				t.Fatalf("Expected *apierror.Error, got %v", err)
			}
			if apiErr.Kind != tc.expectedKind {
				t.Errorf("Expected kind %s, got %s", tc.expectedKind, apiErr.Kind)
			}
			if tc.expectedReason != "" && apiErr.Reason != tc.expectedReason {
				t.Errorf("Expected reason %s, got %s", tc.expectedReason, apiErr.Reason)
			}
			if tc.status != http.StatusOK && apiErr.StatusCode != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, apiErr.StatusCode)
			}
		})
	}
}

func TestDispatcher_Success(t *testing.T) {
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok1" {
			t.Errorf("Expected bearer token, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Expected JSON content type, got %q", got)
		}
		fmt.Fprint(w, `{"responseCode":"00","message":"Successful","data":{"id":"12345678901","status":"found"}}`)
	}, &fakeTokens{})

	resp, err := d.Do(context.Background(), Request{
		Method:   http.MethodPost,
		Endpoint: "/verify/identity/nin/verify",
		Body:     map[string]interface{}{"id": "12345678901"},
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if !resp.Success {
		t.Error("Expected success=true")
	}
	if resp.Code != "00" {
		t.Errorf("Expected code 00, got %q", resp.Code)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if resp.Message != "Successful" {
		t.Errorf("Expected message Successful, got %q", resp.Message)
	}

	var data struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := resp.DecodeData(&data); err != nil {
		t.Fatalf("DecodeData failed: %v", err)
	}
	if data.ID != "12345678901" {
		t.Errorf("Expected data.id, got %q", data.ID)
	}
}

func TestDispatcher_ScopeFailureSkipsNetwork(t *testing.T) {
	var resourceCalls int32
	tokens := &fakeTokens{actions: []string{"VerifyMeNin"}}

	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&resourceCalls, 1)
		fmt.Fprint(w, `{"responseCode":"00"}`)
	}, tokens)

	_, err := d.Do(context.Background(), Request{
		Method:   http.MethodGet,
		Endpoint: "/verify/identity/cac-lookup",
		Require:  auth.RequireAny("MonoCac"),
	})
	if !apierror.IsKind(err, apierror.KindInsufficientScope) {
		t.Fatalf("Expected insufficient scope error, got %v", err)
	}
	if n := atomic.LoadInt32(&resourceCalls); n != 0 {
		t.Errorf("Expected zero resource calls for a scope failure, got %d", n)
	}
}

func TestDispatcher_RetryAfter401(t *testing.T) {
	var resourceCalls int32
	tokens := &fakeTokens{}

	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&resourceCalls, 1)
		if n == 1 {
			if got := r.Header.Get("Authorization"); got != "Bearer tok1" {
				t.Errorf("Expected first attempt with tok1, got %q", got)
			}
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok2" {
			t.Errorf("Expected retry with fresh tok2, got %q", got)
		}
		fmt.Fprint(w, `{"responseCode":"00","message":"Successful"}`)
	}, tokens)

	resp, err := d.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})
	if err != nil {
		t.Fatalf("Expected transparent retry, got %v", err)
	}
	if !resp.Success {
		t.Error("Expected success=true after retry")
	}

	if n := atomic.LoadInt32(&resourceCalls); n != 2 {
		t.Errorf("Expected exactly 2 resource calls, got %d", n)
	}
	if n := atomic.LoadInt32(&tokens.tokenCalls); n != 2 {
		t.Errorf("Expected exactly 2 token fetches, got %d", n)
	}
	if n := atomic.LoadInt32(&tokens.invalidates); n != 1 {
		t.Errorf("Expected exactly 1 invalidation, got %d", n)
	}
}

func TestDispatcher_SecondConsecutive401(t *testing.T) {
	var resourceCalls int32
	tokens := &fakeTokens{}

	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&resourceCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"token rejected"}`)
	}, tokens)

	_, err := d.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})
	apiErr, ok := apierror.As(err)
	if !ok || apiErr.Kind != apierror.KindAuthentication {
		t.Fatalf("Expected authentication error after second 401, got %v", err)
	}

	// Exactly one retry: no third attempt is ever made.
	if n := atomic.LoadInt32(&resourceCalls); n != 2 {
		t.Errorf("Expected exactly 2 resource calls, got %d", n)
	}
}

func TestDispatcher_RateLimitNoRetry(t *testing.T) {
	var resourceCalls int32

	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&resourceCalls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, &fakeTokens{})

	_, err := d.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})
	if !apierror.IsKind(err, apierror.KindRateLimit) {
		t.Fatalf("Expected rate limit error, got %v", err)
	}
	if n := atomic.LoadInt32(&resourceCalls); n != 1 {
		t.Errorf("Expected a single attempt for 429, got %d", n)
	}
}

func TestDispatcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Config{
		BaseURL:        srv.URL,
		RequestTimeout: 50 * time.Millisecond,
	}
	d := NewDispatcher(cfg, &fakeTokens{})

	_, err := d.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})
	apiErr, ok := apierror.As(err)
	if !ok || apiErr.Kind != apierror.KindNetwork {
		t.Fatalf("Expected network error, got %v", err)
	}
	if apiErr.Reason != apierror.ReasonTimeout {
		t.Errorf("Expected reason timeout, got %q", apiErr.Reason)
	}
}

func TestDispatcher_ConnectionFailure(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	cfg := config.Config{
		BaseURL:        baseURL,
		RequestTimeout: 2 * time.Second,
	}
	d := NewDispatcher(cfg, &fakeTokens{})

	_, err := d.Do(context.Background(), Request{Method: http.MethodGet, Endpoint: "/x"})
	apiErr, ok := apierror.As(err)
	if !ok || apiErr.Kind != apierror.KindNetwork {
		t.Fatalf("Expected network error, got %v", err)
	}
	if apiErr.Reason != apierror.ReasonConnection {
		t.Errorf("Expected reason connection, got %q", apiErr.Reason)
	}
}

func TestDispatcher_QueryEncoding(t *testing.T) {
	var gotQuery string
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"responseCode":"00"}`)
	}, &fakeTokens{})

	_, err := d.Do(context.Background(), Request{
		Method:   http.MethodGet,
		Endpoint: "/verify/identity/tin",
		Query:    map[string][]string{"tin": {"123 456"}},
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if gotQuery != "tin=123+456" {
		t.Errorf("Expected encoded query, got %q", gotQuery)
	}
}
