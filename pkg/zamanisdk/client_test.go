package zamanisdk

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorded captures the last request seen by a fake backend.
type recorded struct {
	method string
	path   string
	raw    string
	query  string
	header http.Header
	body   string
}

func newBackend(t *testing.T, status int, contentType, body string) (*httptest.Server, *recorded) {
	t.Helper()

	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.raw = r.URL.EscapedPath()
		rec.query = r.URL.RawQuery
		rec.header = r.Header.Clone()
		rec.body = string(raw)

		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestClientAuthorizationHeader(t *testing.T) {
	t.Parallel()

	t.Run("token present", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusOK, "application/json", `{"data":[]}`)
		client := NewClient(srv.URL, NewMemorySession("abc"))

		_, err := client.Get(context.Background(), "/communities")
		require.NoError(t, err)
		require.Equal(t, "Bearer abc", rec.header.Get("Authorization"))
		require.Equal(t, "/communities", rec.path)
	})

	t.Run("no token", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusOK, "application/json", `{"data":[]}`)
		client := NewClient(srv.URL, NewMemorySession(""))

		_, err := client.Get(context.Background(), "/communities")
		require.NoError(t, err)
		_, present := rec.header["Authorization"]
		require.False(t, present)
	})

	t.Run("nil session", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusOK, "application/json", `{}`)
		client := NewClient(srv.URL, nil)

		_, err := client.Get(context.Background(), "/auth/me")
		require.NoError(t, err)
		require.Empty(t, rec.header.Get("Authorization"))
	})

	t.Run("skip auth", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusOK, "application/json", `{}`)
		client := NewClient(srv.URL, NewMemorySession("abc"))

		_, err := client.Post(context.Background(), "/auth/register", map[string]string{"a": "b"}, SkipAuth())
		require.NoError(t, err)
		require.Empty(t, rec.header.Get("Authorization"))
	})

	t.Run("with session clone", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusOK, "application/json", `{}`)
		base := NewClient(srv.URL, NewMemorySession("first"))
		clone := base.WithSession(NewMemorySession("second"))

		_, err := clone.Get(context.Background(), "/auth/me")
		require.NoError(t, err)
		require.Equal(t, "Bearer second", rec.header.Get("Authorization"))

		token, err := base.Session().Token(context.Background())
		require.NoError(t, err)
		require.Equal(t, "first", token)
	})
}

func TestClientURLAndBody(t *testing.T) {
	t.Parallel()

	t.Run("joins base and endpoint with one slash", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusOK, "application/json", `{}`)
		client := NewClient(srv.URL+"/", nil)

		_, err := client.Get(context.Background(), "communities/abc")
		require.NoError(t, err)
		require.Equal(t, "/communities/abc", rec.path)
	})

	t.Run("query parameters", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusOK, "application/json", `{}`)
		client := NewClient(srv.URL, nil)

		_, err := client.Get(context.Background(), "/wallets",
			WithQuery(url.Values{"page": {"2"}, "search": {"main wallet"}}),
		)
		require.NoError(t, err)
		values, err := url.ParseQuery(rec.query)
		require.NoError(t, err)
		require.Equal(t, "2", values.Get("page"))
		require.Equal(t, "main wallet", values.Get("search"))
	})

	t.Run("json body", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusCreated, "application/json", `{}`)
		client := NewClient(srv.URL, nil)

		_, err := client.Post(context.Background(), "/streets", CreateStreetRequest{Name: "Allen"})
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, rec.method)
		require.Equal(t, "application/json", rec.header.Get("Content-Type"))
		require.JSONEq(t, `{"name":"Allen"}`, rec.body)
	})

	t.Run("raw body with header override", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusOK, "application/json", `{}`)
		client := NewClient(srv.URL, nil)

		_, err := client.Put(context.Background(), "/raw", []byte("a=b"),
			WithHeader("Content-Type", "application/x-www-form-urlencoded"),
		)
		require.NoError(t, err)
		require.Equal(t, "a=b", rec.body)
		require.Equal(t, "application/x-www-form-urlencoded", rec.header.Get("Content-Type"))
	})

	t.Run("no body on delete", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusNoContent, "", "")
		client := NewClient(srv.URL, nil)

		res, err := client.Delete(context.Background(), "/dues/1")
		require.NoError(t, err)
		require.Equal(t, http.StatusNoContent, res.StatusCode)
		require.Empty(t, rec.body)
		require.Empty(t, rec.header.Get("Content-Type"))
	})
}

func TestClientResponses(t *testing.T) {
	t.Parallel()

	t.Run("json success", func(t *testing.T) {
		srv, _ := newBackend(t, http.StatusOK, "application/json; charset=utf-8", `{"data":{"id":"u1","username":"ada"}}`)
		client := NewClient(srv.URL, nil)

		res, err := client.Get(context.Background(), "/auth/me")
		require.NoError(t, err)
		require.True(t, res.IsJSON())

		var env Envelope[User]
		require.NoError(t, res.Decode(&env))
		require.Equal(t, "ada", env.Data.Username)
	})

	t.Run("text success", func(t *testing.T) {
		srv, _ := newBackend(t, http.StatusOK, "text/plain", "pong")
		client := NewClient(srv.URL, nil)

		res, err := client.Get(context.Background(), "/ping")
		require.NoError(t, err)
		require.False(t, res.IsJSON())
		require.Equal(t, "pong", res.Text)

		var v map[string]any
		require.Error(t, res.Decode(&v))
	})

	t.Run("decode validates payload", func(t *testing.T) {
		srv, _ := newBackend(t, http.StatusOK, "application/json", `{"data":{"username":"no-id"}}`)
		client := NewClient(srv.URL, nil)

		_, err := client.Auth().Me(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid response payload")
	})

	t.Run("api error with message", func(t *testing.T) {
		srv, _ := newBackend(t, http.StatusConflict, "application/json", `{"message":"Community ID already taken"}`)
		client := NewClient(srv.URL, nil)

		_, err := client.Post(context.Background(), "/communities", map[string]string{})
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
		require.Equal(t, "Community ID already taken", apiErr.Message)
		require.Equal(t, "Community ID already taken", apiErr.Payload["message"])
		require.Equal(t, http.StatusConflict, StatusCode(err))
	})

	t.Run("api error fallback message", func(t *testing.T) {
		srv, _ := newBackend(t, http.StatusInternalServerError, "text/html", "<h1>oops</h1>")
		client := NewClient(srv.URL, nil)

		_, err := client.Get(context.Background(), "/communities")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "request failed with status 500", apiErr.Message)
		require.Nil(t, apiErr.Payload)
		require.Equal(t, "<h1>oops</h1>", apiErr.Body)
	})

	t.Run("network error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		client := NewClient(srv.URL, nil)

		_, err := client.Get(context.Background(), "/communities")
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
		require.Equal(t, UnreachableMessage, err.Error())
		require.NotNil(t, errors.Unwrap(err))
	})
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv, rec := newBackend(t, http.StatusOK, "application/json", `{"status":"ok","uptime":"1s","version":"dev"}`)
	client := NewClient(srv.URL, NewMemorySession("abc"))

	health, err := client.GetLiveness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "/livez", rec.path)
	require.Empty(t, rec.header.Get("Authorization"))
}
