package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/zamanihq/dashboard/internal/dashboard/permission"
	"github.com/zamanihq/dashboard/internal/dashboard/querycache"
	"github.com/zamanihq/dashboard/internal/dashboard/resource"
	"github.com/zamanihq/dashboard/internal/dashboard/servicegroup"
	"github.com/zamanihq/dashboard/pkg/httpx"
	"github.com/zamanihq/dashboard/pkg/slogx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"

	_ "github.com/zamanihq/dashboard/api/dashboard" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	backendURL   string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	cache      *querycache.Cache
	httpClient *http.Client
	proxy      *ProxyHandler

	// Optional
	PublicAPIBaseURL string
	StaticDir        string
	Templates        []servicegroup.Template
	CachePinger      Pinger
}

func NewRouter(
	backendURL, buildVersion string,
	cache *querycache.Cache,
	logger *slog.Logger,
) *Router {
	if cache == nil {
		cache = querycache.New(nil)
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		backendURL:   backendURL,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		cache:        cache,
		httpClient: &http.Client{
			Transport: requestIDTransport{next: http.DefaultTransport},
		},
		proxy: NewProxyHandler(backendURL),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// Use appends middleware that runs inside the logging middleware.
func (r *Router) Use(mws ...httpx.Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

func (r *Router) ApplyRoutes() {
	r.registerProxy()
	r.registerDashboard()
	r.registerSystem()
	r.registerPages()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Zamani Dashboard Gateway API
//	@version		0.1.0
//	@description	Same-origin gateway for the Zamani estate-management dashboard.
//	@description	It proxies backend calls, serves the dashboard and exposes navigation and utility helpers.
//
//	@BasePath					/
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Backend session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// Hooks returns resource hooks that call the backend with token and cache
// under the token's own scope.
func (r *Router) Hooks(token string) *resource.Hooks {
	client := zamanisdk.NewClient(r.backendURL, zamanisdk.NewMemorySession(token))
	client.HTTPClient = r.httpClient
	client.UserAgent = "zamani-dashboard/" + r.buildVersion
	return resource.New(client, r.cache.Scoped(querycache.ScopeForToken(token)))
}

// ResolveProfile asks the backend for the profile behind token.
func (r *Router) ResolveProfile(ctx context.Context, token string) (string, error) {
	me, err := r.Hooks(token).Auth().Me().Fetch(ctx)
	if err != nil {
		return "", err
	}
	return me.ProfileType, nil
}

func (r *Router) registerProxy() {
	// Every dashboard backend call goes through here, so no limiter
	r.Mux.Handle(ProxyPrefix+"{path...}", r.proxy)
}

func (r *Router) registerDashboard() {
	authn := httpx.AuthnMiddleware(r.ResolveProfile)

	r.Mux.Handle("GET /v1/navigation",
		httpx.Chain(http.HandlerFunc(NavigationHandler),
			authn,
			httpx.RateLimitByToken(httpx.ModerateLimit),
		),
	)

	groups := &ServiceGroupsHandler{Hooks: r.Hooks, Templates: r.Templates}
	r.Mux.Handle("GET /v1/service-groups",
		httpx.Chain(groups,
			authn,
			httpx.RequireSection(permission.HasPermission, string(permission.SectionUtilities)),
			httpx.RateLimitByToken(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/config",
		httpx.Chain(ClientConfigHandler(r.PublicAPIBaseURL, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	backend := BackendPinger{URL: r.backendURL, Client: r.httpClient}
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, backend, r.CachePinger),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerPages() {
	if r.StaticDir == "" {
		return
	}
	gate := &PageGate{Dir: r.StaticDir, Resolve: r.ResolveProfile}
	r.Mux.Handle("/",
		httpx.Chain(gate,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

// requestIDTransport copies the request id of the inbound request onto
// backend calls made on its behalf.
type requestIDTransport struct {
	next http.RoundTripper
}

func (t requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqID := slogx.RequestIDFromContext(req.Context())
	if reqID == "" || req.Header.Get(slogx.RequestIDHeader) != "" {
		return t.next.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set(slogx.RequestIDHeader, reqID)
	return t.next.RoundTrip(req)
}
