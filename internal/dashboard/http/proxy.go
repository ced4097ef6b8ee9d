package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/zamanihq/dashboard/pkg/httpx"
	"github.com/zamanihq/dashboard/pkg/slogx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// ProxyPrefix is where the dashboard sends every backend call.
const ProxyPrefix = "/api/proxy/"

// forwardedHeaders are the only request headers passed to the backend.
var forwardedHeaders = []string{"Content-Type", "Authorization"}

// ProxyHandler relays requests under ProxyPrefix to the backend and returns
// the backend's status and body unchanged.
type ProxyHandler struct {
	Backend string
	Client  *http.Client
}

// NewProxyHandler returns a proxy to backend. Redirects from the backend are
// returned to the caller rather than followed. Calls have no timeout of their
// own and end with the incoming request.
func NewProxyHandler(backend string) *ProxyHandler {
	return &ProxyHandler{
		Backend: strings.TrimRight(backend, "/"),
		Client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// ServeHTTP forwards the request.
//
//	@Summary		Backend proxy
//	@Description	Forwards any method to BACKEND_API_URL/{path} with the query string and body unchanged.
//	@Description	Only Content-Type and Authorization are forwarded from the incoming headers.
//	@Tags			Proxy
//	@Param			path	path		string	true	"Backend path"
//	@Success		200		{string}	string	"Backend response, verbatim"
//	@Failure		502		{object}	httpx.ErrorResponse	"Unable to reach the backend server."
//	@Router			/api/proxy/{path} [get].
func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	target := h.Target(r)

	var body io.Reader
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		body = r.Body
	}

	out, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		log.Warn("failed to build proxy request", "target", target, "err", err)
		httpx.WriteError(w, http.StatusBadRequest, "Invalid proxy request")
		return
	}
	if body != nil {
		out.ContentLength = r.ContentLength
	}
	for _, name := range forwardedHeaders {
		if v := r.Header.Get(name); v != "" {
			out.Header.Set(name, v)
		}
	}

	resp, err := h.Client.Do(out)
	if err != nil {
		log.Warn("backend unreachable", "target", target, "err", err)
		httpx.WriteError(w, http.StatusBadGateway, zamanisdk.UnreachableMessage)
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Debug("proxy response copy interrupted", "err", err)
	}
}

// Target is the backend URL for r: the path below ProxyPrefix joined to the
// backend base, plus the raw query string.
func (h *ProxyHandler) Target(r *http.Request) string {
	path := strings.TrimPrefix(r.URL.EscapedPath(), strings.TrimSuffix(ProxyPrefix, "/"))
	target := h.Backend + "/" + strings.TrimPrefix(path, "/")
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return target
}
