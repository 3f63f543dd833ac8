package gateway

import (
	"context"
	"net/http"
	"net/url"

	"verigate/pkg/auth"
	"verigate/pkg/config"
	"verigate/pkg/logging"
	"verigate/pkg/transport"
)

// APIResponse is the uniform success value returned by every endpoint
// method.
type APIResponse = transport.Response

// TokenManager is the capability the client needs from its token layer.
// *auth.Manager is the default implementation; substitutes supplied through
// WithTokenManagerFactory must honor the same contract: cache-check,
// fetch-on-miss with concurrent misses collapsed into one fetch, expiry
// math, invalidation, and local scope checks.
type TokenManager interface {
	transport.TokenSource
	Info() auth.Info
}

// Dispatcher is the capability the client needs from its request layer.
// *transport.Dispatcher is the default; wrappers adding retry or
// circuit-breaking policies can be substituted through
// WithDispatcherFactory without re-implementing token or scope logic.
type Dispatcher interface {
	Do(ctx context.Context, req transport.Request) (*transport.Response, error)
}

// TokenManagerFactory builds the token layer from the resolved
// configuration and the client's pooled HTTP client.
type TokenManagerFactory func(cfg config.Config, httpClient *http.Client) TokenManager

// DispatcherFactory builds the request layer. It always receives the
// already-built token manager; the construction order is fixed so wiring
// stays correct even when either factory is overridden.
type DispatcherFactory func(cfg config.Config, httpClient *http.Client, tokens TokenManager) Dispatcher

type options struct {
	params        config.Params
	httpClient    *http.Client
	store         auth.TokenStore
	newTokens     TokenManagerFactory
	newDispatcher DispatcherFactory
}

// Option configures the client.
type Option func(*options)

// WithCredentials sets the client ID and secret explicitly, overriding the
// config file and environment.
func WithCredentials(clientID, clientSecret string) Option {
	return func(o *options) {
		o.params.ClientID = clientID
		o.params.ClientSecret = clientSecret
	}
}

// WithBaseURL overrides the gateway base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.params.BaseURL = baseURL
	}
}

// WithTokenURL overrides the token endpoint URL.
func WithTokenURL(tokenURL string) Option {
	return func(o *options) {
		o.params.TokenURL = tokenURL
	}
}

// WithConfig supplies the full set of explicit configuration overrides.
func WithConfig(params config.Params) Option {
	return func(o *options) {
		o.params = params
	}
}

// WithHTTPClient sets a custom HTTP client shared by the token manager and
// dispatcher. The caller keeps ownership; Close will not release it.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithTokenStore substitutes the default token manager's storage, e.g. an
// auth.FileStore shared between worker processes.
func WithTokenStore(store auth.TokenStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithTokenManagerFactory overrides construction of the token layer.
func WithTokenManagerFactory(factory TokenManagerFactory) Option {
	return func(o *options) {
		o.newTokens = factory
	}
}

// WithDispatcherFactory overrides construction of the request layer.
func WithDispatcherFactory(factory DispatcherFactory) Option {
	return func(o *options) {
		o.newDispatcher = factory
	}
}

// Client is the facade over the token manager and dispatcher. It is safe for
// use by any number of goroutines; each endpoint method blocks its calling
// goroutine for the duration of the call.
//
// The expected embedding pattern is process-scoped: construct one Client at
// startup, share it, and Close it at shutdown. The client holds no global
// state of its own.
type Client struct {
	cfg        config.Config
	tokens     TokenManager
	dispatcher Dispatcher

	httpClient    *http.Client
	ownsTransport bool
}

// New resolves the configuration and wires the client. The two factory
// hooks run in a fixed order: the token manager is built first, then the
// dispatcher receives it.
func New(opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := config.Resolve(o.params)
	if err != nil {
		return nil, err
	}

	httpClient := o.httpClient
	ownsTransport := false
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
		ownsTransport = true
	}

	newTokens := o.newTokens
	if newTokens == nil {
		store := o.store
		newTokens = func(cfg config.Config, httpClient *http.Client) TokenManager {
			managerOpts := []auth.ManagerOption{auth.WithHTTPClient(httpClient)}
			if store != nil {
				managerOpts = append(managerOpts, auth.WithTokenStore(store))
			}
			return auth.NewManager(cfg, managerOpts...)
		}
	}

	newDispatcher := o.newDispatcher
	if newDispatcher == nil {
		newDispatcher = func(cfg config.Config, httpClient *http.Client, tokens TokenManager) Dispatcher {
			return transport.NewDispatcher(cfg, tokens, transport.WithDispatcherHTTPClient(httpClient))
		}
	}

	tokens := newTokens(cfg, httpClient)
	dispatcher := newDispatcher(cfg, httpClient, tokens)

	logging.Debug("Gateway", "Client initialized for base_url=%s", cfg.BaseURL)

	return &Client{
		cfg:           cfg,
		tokens:        tokens,
		dispatcher:    dispatcher,
		httpClient:    httpClient,
		ownsTransport: ownsTransport,
	}, nil
}

// call is the generic primitive every endpoint method delegates to. It
// performs no error handling of its own; taxonomy errors propagate
// unchanged.
func (c *Client) call(ctx context.Context, method, endpoint string, body interface{}, query url.Values, require auth.Requirement) (*APIResponse, error) {
	return c.dispatcher.Do(ctx, transport.Request{
		Method:   method,
		Endpoint: endpoint,
		Body:     body,
		Query:    query,
		Require:  require,
	})
}

// Token returns a valid access token, fetching one when the cached slot is
// empty or expired. Endpoint methods do this implicitly; it is exposed for
// callers that talk to the gateway outside this client.
func (c *Client) Token(ctx context.Context) (*auth.Token, error) {
	return c.tokens.Token(ctx)
}

// TokenInfo returns a read-only snapshot of the current token state.
func (c *Client) TokenInfo() auth.Info {
	return c.tokens.Info()
}

// BaseURL returns the resolved gateway base URL.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Close releases the pooled transport. Required when the client's lifetime
// is managed manually; callers that supplied their own HTTP client keep
// ownership of it and Close leaves it untouched.
func (c *Client) Close() {
	if c.ownsTransport {
		c.httpClient.CloseIdleConnections()
	}
}
