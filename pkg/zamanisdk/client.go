package zamanisdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Client is a client for the Zamani estate management API. It exposes the raw
// verbs (Get, Post, Put, Patch, Delete) and typed resource services built on
// top of them.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// UserAgent is sent on every request when non-empty.
	UserAgent string

	session SessionProvider
}

// NewClient creates a client for baseURL using session for bearer tokens. A
// nil session means requests are always sent without Authorization.
//
// The underlying http.Client has no timeout: every call is a single
// best-effort request bounded only by its context.
func NewClient(baseURL string, session SessionProvider) *Client {
	if session == nil {
		session = noSession{}
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
		session:    session,
	}
}

// WithSession returns a shallow copy of the client bound to another session.
// The gateway uses this to issue calls on behalf of each request's token.
func (c *Client) WithSession(session SessionProvider) *Client {
	if session == nil {
		session = noSession{}
	}
	clone := *c
	clone.session = session
	return &clone
}

// Session returns the provider the client reads tokens from.
func (c *Client) Session() SessionProvider {
	return c.session
}

// RequestOption customises a single request.
type RequestOption func(*requestConfig)

type requestConfig struct {
	query    url.Values
	headers  http.Header
	skipAuth bool
}

// WithQuery appends query parameters to the request URL.
func WithQuery(values url.Values) RequestOption {
	return func(cfg *requestConfig) {
		for key, vals := range values {
			for _, v := range vals {
				cfg.query.Add(key, v)
			}
		}
	}
}

// WithHeader sets (overrides) a request header.
func WithHeader(key, value string) RequestOption {
	return func(cfg *requestConfig) {
		cfg.headers.Set(key, value)
	}
}

// SkipAuth sends the request without an Authorization header even when a
// token is available.
func SkipAuth() RequestOption {
	return func(cfg *requestConfig) {
		cfg.skipAuth = true
	}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, opts ...RequestOption) (*Result, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, opts)
}

// Post issues a POST request with body.
func (c *Client) Post(ctx context.Context, endpoint string, body any, opts ...RequestOption) (*Result, error) {
	return c.do(ctx, http.MethodPost, endpoint, body, opts)
}

// Put issues a PUT request with body.
func (c *Client) Put(ctx context.Context, endpoint string, body any, opts ...RequestOption) (*Result, error) {
	return c.do(ctx, http.MethodPut, endpoint, body, opts)
}

// Patch issues a PATCH request with body.
func (c *Client) Patch(ctx context.Context, endpoint string, body any, opts ...RequestOption) (*Result, error) {
	return c.do(ctx, http.MethodPatch, endpoint, body, opts)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string, opts ...RequestOption) (*Result, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil, opts)
}

// Resource services

func (c *Client) Auth() *AuthService                 { return &AuthService{c: c} }
func (c *Client) Communities() *CommunitiesService   { return &CommunitiesService{c: c} }
func (c *Client) Users() *UsersService               { return &UsersService{c: c} }
func (c *Client) Wallets() *WalletsService           { return &WalletsService{c: c} }
func (c *Client) AccessCodes() *AccessCodesService   { return &AccessCodesService{c: c} }
func (c *Client) Dues() *DuesService                 { return &DuesService{c: c} }
func (c *Client) Partners() *PartnersService         { return &PartnersService{c: c} }
func (c *Client) Integrations() *IntegrationsService { return &IntegrationsService{c: c} }
func (c *Client) Services() *ServicesService         { return &ServicesService{c: c} }
func (c *Client) Streets() *StreetsService           { return &StreetsService{c: c} }
func (c *Client) Residents() *ResidentsService       { return &ResidentsService{c: c} }
func (c *Client) Admins() *AdminsService             { return &AdminsService{c: c} }
