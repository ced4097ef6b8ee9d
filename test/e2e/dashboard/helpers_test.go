package dashboard_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/zamanihq/dashboard/internal/cli"
	"github.com/zamanihq/dashboard/internal/dashboard/app"
)

/*
 * Helpers for the dashboard end-to-end tests. Each test runs a fake Zamani
 * backend, the gateway in front of it, and drives both over real HTTP.
 */

const (
	testToken    = "e2e-session-token"
	testUsername = "admin"
	testPassword = "Admin123!"
)

// backend is a minimal Zamani API.
type backend struct {
	mu         sync.Mutex
	hits       map[string]int
	requestIDs []string
}

func newBackend(t *testing.T) (*backend, string) {
	t.Helper()
	b := &backend{hits: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(srv.Close)
	return b, srv.URL
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path
	b.mu.Lock()
	b.hits[route]++
	if id := r.Header.Get("X-Request-ID"); id != "" {
		b.requestIDs = append(b.requestIDs, id)
	}
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if route == "HEAD /" {
		return
	}
	if route == "POST /auth/login" {
		var req struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != testUsername || req.Password != testPassword {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid username or password"}`))
			return
		}
		writeData(w, map[string]any{"token": testToken, "user": admin})
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+testToken {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
		return
	}

	switch route {
	case "GET /auth/me":
		writeData(w, admin)
	case "POST /auth/logout":
		w.WriteHeader(http.StatusNoContent)
	case "GET /services":
		writeData(w, []map[string]any{
			{"id": "s1", "name": "Ikeja Electric", "category": "Electricity Services"},
			{"id": "s2", "name": "Estate Levy", "category": "Funding"},
			{"id": "s3", "name": "Clubhouse", "category": "Recreation"},
		})
	case "GET /access-codes":
		writeData(w, []map[string]any{
			{"id": "a1", "code": "4821", "status": "Open", "visitorName": "Bola"},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	}
}

var admin = map[string]any{
	"id":          "u1",
	"username":    testUsername,
	"firstName":   "Estate",
	"lastName":    "Admin",
	"profileType": "Community Admin",
	"communityId": "green-estate",
}

func writeData(w http.ResponseWriter, data any) {
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func (b *backend) count(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[route]
}

func (b *backend) seenRequestIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requestIDs...)
}

// startGateway runs the dashboard gateway against backendURL.
func startGateway(t *testing.T, backendURL string, redisAddr string) string {
	t.Helper()

	cfg := app.Config{
		BackendAPIURL:       backendURL,
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "json",
		ShutdownGracePeriod: time.Second,
		QueryStaleTime:      30 * time.Second,
		RedisNamespace:      "e2e",
	}
	if redisAddr != "" {
		cfg.RedisAddrs = []string{redisAddr}
	}

	application, err := app.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = application.Shutdown()
	})
	return srv.URL
}

// setupRedisContainer starts Redis and returns its address.
func setupRedisContainer(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

// zamanictl runs one CLI invocation against apiURL with state kept in dir.
func zamanictl(t *testing.T, apiURL, dir string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--api-url", apiURL, "--state-file", filepath.Join(dir, "state.db")}, args...)
	code := cli.Execute(context.Background(), "e2e", full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func getJSON(t *testing.T, url, token string, out any) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
