package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/zamanihq/dashboard/internal/dashboard/permission"
	"github.com/zamanihq/dashboard/internal/dashboard/querycache"
	"github.com/zamanihq/dashboard/pkg/httpx"
	"github.com/zamanihq/dashboard/pkg/slogx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// captured is what the fake backend saw.
type captured struct {
	mu     sync.Mutex
	method string
	uri    string
	header http.Header
	body   string
	calls  map[string]int
}

func (c *captured) count(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[path]
}

// newBackend fakes the Zamani API. Tokens map to profile types; unknown
// tokens are rejected with 401.
func newBackend(t *testing.T, profiles map[string]string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{calls: make(map[string]int)}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got.mu.Lock()
		got.method = r.Method
		got.uri = r.URL.RequestURI()
		got.header = r.Header.Clone()
		got.body = string(body)
		got.calls[r.URL.Path]++
		got.mu.Unlock()

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		switch r.URL.Path {
		case "/auth/me":
			profile, ok := profiles[token]
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Session expired"}`))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": "u-" + token, "username": token, "profileType": profile},
			})
		case "/services":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":[
				{"id":"s1","name":"Prepaid meter","category":"Electricity Services","isActive":true},
				{"id":"s2","name":"Levy","category":"Funding","isActive":true},
				{"id":"s3","name":"Gym","category":"Recreation","isActive":true}
			]}`))
		default:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func newTestRouter(t *testing.T, backend string, static string) *Router {
	t.Helper()
	r := NewRouter(backend, "test", querycache.New(nil), slogx.Discard())
	r.PublicAPIBaseURL = "https://api.zamani.test"
	r.StaticDir = static
	r.ApplyRoutes()
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestProxy(t *testing.T) {
	t.Parallel()

	backend, got := newBackend(t, nil)
	router := newTestRouter(t, backend.URL, "")

	t.Run("forwards path, query and allowed headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/proxy/a/b?x=1", nil)
		req.Header.Set("Authorization", "Bearer tok")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Cookie", "token=tok")
		req.Header.Set("X-Custom", "nope")

		rec := serve(router, req)
		require.Equal(t, http.StatusTeapot, rec.Code)
		require.Equal(t, "short and stout", rec.Body.String())
		require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))

		got.mu.Lock()
		defer got.mu.Unlock()
		require.Equal(t, http.MethodGet, got.method)
		require.Equal(t, "/a/b?x=1", got.uri)
		require.Equal(t, "Bearer tok", got.header.Get("Authorization"))
		require.Equal(t, "application/json", got.header.Get("Content-Type"))
		require.Empty(t, got.header.Get("Cookie"))
		require.Empty(t, got.header.Get("X-Custom"))
		require.Empty(t, got.header.Get(slogx.RequestIDHeader))
	})

	t.Run("does not forward request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/proxy/a/b?x=1", nil)
		req.Header.Set(slogx.RequestIDHeader, "client-supplied")

		rec := serve(router, req)
		require.Equal(t, http.StatusTeapot, rec.Code)
		require.Equal(t, "client-supplied", rec.Header().Get(slogx.RequestIDHeader))

		got.mu.Lock()
		defer got.mu.Unlock()
		require.Empty(t, got.header.Get(slogx.RequestIDHeader))
	})

	t.Run("forwards body for writes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/proxy/access-codes/a1/cancel", strings.NewReader(`{"reason":"x"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := serve(router, req)
		require.Equal(t, http.StatusTeapot, rec.Code)

		got.mu.Lock()
		defer got.mu.Unlock()
		require.Equal(t, http.MethodPatch, got.method)
		require.Equal(t, `{"reason":"x"}`, got.body)
	})

	t.Run("drops body for GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/proxy/users", strings.NewReader("ignored"))
		serve(router, req)

		got.mu.Lock()
		defer got.mu.Unlock()
		require.Empty(t, got.body)
	})
}

func TestProxyTarget(t *testing.T) {
	t.Parallel()

	h := NewProxyHandler("https://backend.zamani.test/")
	req := httptest.NewRequest(http.MethodGet, "/api/proxy/a/b?x=1", nil)
	require.Equal(t, "https://backend.zamani.test/a/b?x=1", h.Target(req))

	req = httptest.NewRequest(http.MethodGet, "/api/proxy/users/a%2Fb?search=ada+obi&page=2", nil)
	require.Equal(t, "https://backend.zamani.test/users/a%2Fb?search=ada+obi&page=2", h.Target(req))
}

func TestBackendClientsHaveNoTimeout(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, "http://backend.zamani.test", "")
	require.Zero(t, r.httpClient.Timeout)
	require.Zero(t, r.proxy.Client.Timeout)
}

func TestProxyStopsWithRequestContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(slow.Close)
	t.Cleanup(func() { close(release) })

	router := newTestRouter(t, slow.URL, "")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/proxy/slow", nil).WithContext(ctx)
	rec := serve(router, req)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestProxyBurstIsNotLimited(t *testing.T) {
	t.Parallel()

	backend, _ := newBackend(t, nil)
	router := newTestRouter(t, backend.URL, "")

	codes := make(map[int]int)
	for range 150 {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/proxy/a/b?x=1", nil))
		codes[rec.Code]++
	}
	require.Equal(t, map[int]int{http.StatusTeapot: 150}, codes)
}

func TestProxyBackendUnreachable(t *testing.T) {
	t.Parallel()

	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	router := newTestRouter(t, dead.URL, "")
	rec := serve(router, httptest.NewRequest(http.MethodPost, "/api/proxy/auth/login", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.JSONEq(t, `{"message":"Unable to reach the backend server."}`, rec.Body.String())
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	backend, got := newBackend(t, map[string]string{
		"res": zamanisdk.ProfileResident,
		"dev": zamanisdk.ProfileDeveloper,
	})
	router := newTestRouter(t, backend.URL, "")

	t.Run("missing token", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/v1/navigation", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("resident sections", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/navigation", nil)
		req.Header.Set("Authorization", "Bearer res")

		rec := serve(router, req)
		require.Equal(t, http.StatusOK, rec.Code)

		nav := decodeBody[NavigationResponse](t, rec)
		require.Equal(t, zamanisdk.ProfileResident, nav.ProfileType)
		require.Equal(t, []permission.Section{
			permission.SectionDashboard,
			permission.SectionWallet,
			permission.SectionAccessCodes,
			permission.SectionSettings,
		}, nav.Sections)
	})

	t.Run("token from cookie, profile cached", func(t *testing.T) {
		before := got.count("/auth/me")
		for range 3 {
			req := httptest.NewRequest(http.MethodGet, "/v1/navigation", nil)
			req.AddCookie(&http.Cookie{Name: httpx.TokenCookie, Value: "dev"})
			rec := serve(router, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}
		require.Equal(t, before+1, got.count("/auth/me"))
	})

	t.Run("backend rejection passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/navigation", nil)
		req.Header.Set("Authorization", "Bearer stale")

		rec := serve(router, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"message":"Session expired"}`, rec.Body.String())
	})
}

func TestServiceGroups(t *testing.T) {
	t.Parallel()

	backend, _ := newBackend(t, map[string]string{
		"admin": zamanisdk.ProfileSuperAdmin,
		"res":   zamanisdk.ProfileResident,
	})
	router := newTestRouter(t, backend.URL, "")

	t.Run("forbidden without utilities", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/service-groups", nil)
		req.Header.Set("Authorization", "Bearer res")
		require.Equal(t, http.StatusForbidden, serve(router, req).Code)
	})

	t.Run("groups services into cards", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/service-groups", nil)
		req.Header.Set("Authorization", "Bearer admin")

		rec := serve(router, req)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[ServiceGroupsResponse](t, rec)
		require.Len(t, resp.Groups, 6)
		require.Empty(t, resp.Overflow)

		byTitle := map[string][]zamanisdk.Service{}
		for _, g := range resp.Groups {
			byTitle[g.Title] = g.Services
		}
		require.Equal(t, "s1", byTitle["Electricity"][0].ID)
		require.Equal(t, "s2", byTitle["Funding"][0].ID)

		// Recreation matches nothing and takes the first never-claimed slot
		require.Equal(t, "Recreation", resp.Groups[1].Title)
		require.False(t, resp.Groups[1].Matched)
		require.Equal(t, "s3", resp.Groups[1].Services[0].ID)
	})
}

func TestClientConfig(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, "http://backend.internal", "")
	rec := serve(router, httptest.NewRequest(http.MethodGet, "/v1/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	cfg := decodeBody[ClientConfig](t, rec)
	require.Equal(t, "https://api.zamani.test", cfg.APIBaseURL)
	require.Equal(t, ProxyPrefix, cfg.ProxyPath)
	require.NotContains(t, rec.Body.String(), "backend.internal")
}

func TestHealth(t *testing.T) {
	t.Parallel()

	backend, _ := newBackend(t, nil)
	router := newTestRouter(t, backend.URL, "")

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decodeBody[zamanisdk.HealthResponse](t, rec).Status)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	health := decodeBody[zamanisdk.HealthResponse](t, rec)
	require.Equal(t, "ok", health.Checks.Backend)
	require.Empty(t, health.Checks.Cache)

	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()
	router = newTestRouter(t, dead.URL, "")
	rec = serve(router, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "degraded", decodeBody[zamanisdk.HealthResponse](t, rec).Status)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenUsable(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty", "", false},
		{"opaque", "d41d8cd98f00b204e980", true},
		{"valid jwt", signedToken(t, now.Add(time.Hour)), true},
		{"expired jwt", signedToken(t, now.Add(-time.Minute)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TokenUsable(tt.token, now))
		})
	}
}

func TestPageGate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>home</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wallet.html"), []byte("<h1>wallet</h1>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	backend, _ := newBackend(t, map[string]string{
		"res": zamanisdk.ProfileResident,
	})
	router := newTestRouter(t, backend.URL, dir)

	t.Run("public page", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/login", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "home")
	})

	t.Run("assets are served as is", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "console.log(1)", rec.Body.String())
	})

	t.Run("protected page without session", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/wallet?tab=dues", nil))
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, RedirectCookie, cookies[0].Name)
		require.Equal(t, "/wallet?tab=dues", cookies[0].Value)
	})

	t.Run("protected page with expired jwt", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
		req.AddCookie(&http.Cookie{Name: httpx.TokenCookie, Value: signedToken(t, time.Now().Add(-time.Hour))})
		require.Equal(t, http.StatusFound, serve(router, req).Code)
	})

	t.Run("protected page with session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
		req.AddCookie(&http.Cookie{Name: httpx.TokenCookie, Value: "res"})

		rec := serve(router, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "wallet")
	})

	t.Run("page outside the profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/communities/c1", nil)
		req.AddCookie(&http.Cookie{Name: httpx.TokenCookie, Value: "res"})

		rec := serve(router, req)
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})

	t.Run("writes are rejected", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
