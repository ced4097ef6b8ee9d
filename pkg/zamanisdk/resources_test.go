package zamanisdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAccessCodeCanCancel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status AccessCodeStatus
		want   bool
	}{
		{AccessCodeOpen, true},
		{AccessCodeUsed, false},
		{AccessCodeCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			code := AccessCode{ID: "1", Code: "1234", Status: tt.status}
			require.Equal(t, tt.want, code.CanCancel())
			require.Equal(t, !tt.want, tt.status.Terminal())
		})
	}
}

func TestAccessCodesCancelCode(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/access-codes/ac1/cancel", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"ac1","code":"1234","status":"Cancelled"}}`))
	}))
	defer srv.Close()

	codes := NewClient(srv.URL, NewMemorySession("t")).AccessCodes()

	_, err := codes.CancelCode(context.Background(), AccessCode{ID: "ac1", Code: "1234", Status: AccessCodeUsed})
	require.Error(t, err)
	require.Equal(t, int32(0), calls.Load())

	cancelled, err := codes.CancelCode(context.Background(), AccessCode{ID: "ac1", Code: "1234", Status: AccessCodeOpen})
	require.NoError(t, err)
	require.Equal(t, AccessCodeCancelled, cancelled.Status)
	require.Equal(t, int32(1), calls.Load())
}

func TestAccessCodeUnknownStatusRejected(t *testing.T) {
	t.Parallel()

	srv, _ := newBackend(t, http.StatusOK, "application/json", `{"data":[{"id":"1","code":"1234","status":"Expired"}]}`)
	_, err := NewClient(srv.URL, nil).AccessCodes().List(context.Background(), ListParams{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "item 0")
}

func TestWalletsDecimalBalance(t *testing.T) {
	t.Parallel()

	srv, rec := newBackend(t, http.StatusOK, "application/json",
		`{"data":[{"id":"w1","name":"Main","balance":"1050.10","isActive":true},{"id":"w2","name":"Levy","balance":0.3,"isActive":false}],"meta":{"page":2,"limit":2,"total":4,"totalPages":2}}`)
	client := NewClient(srv.URL, NewMemorySession("t"))

	list, err := client.Wallets().List(context.Background(), ListParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, "limit=2&page=2", rec.query)
	require.Len(t, list.Items, 2)
	require.True(t, list.Items[0].Balance.Equal(decimal.RequireFromString("1050.1")))
	require.Equal(t, "0.3", list.Items[1].Balance.String())
	require.Equal(t, PageMeta{Page: 2, Limit: 2, Total: 4, TotalPages: 2}, list.Meta)
}

func TestListWithoutMeta(t *testing.T) {
	t.Parallel()

	srv, _ := newBackend(t, http.StatusOK, "application/json", `{"data":[{"id":"p1","name":"Acme"}]}`)
	list, err := NewClient(srv.URL, nil).Partners().List(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Equal(t, PageMeta{Page: 1, Limit: 1, Total: 1, TotalPages: 1}, list.Meta)
}

func TestAuthLoginAndLogout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			require.Empty(t, r.Header.Get("Authorization"))
			var req LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password == "must-change" {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"message":"Password change required","mustChangePassword":true}`))
				return
			}
			_, _ = w.Write([]byte(`{"data":{"token":"tok-1","user":{"id":"u1","username":"ada","profileType":"Super Admin"}}}`))
		case "/auth/logout":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"backend down"}`))
		}
	}))
	defer srv.Close()

	session := NewMemorySession("")
	auth := NewClient(srv.URL, session).Auth()
	ctx := context.Background()

	t.Run("validation blocks the call", func(t *testing.T) {
		_, err := auth.Login(ctx, LoginRequest{})
		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		require.Equal(t, "required", errs["username"])
	})

	t.Run("must change password", func(t *testing.T) {
		_, err := auth.Login(ctx, LoginRequest{Username: "ada", Password: "must-change"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.True(t, apiErr.MustChangePassword())

		token, _ := session.Token(ctx)
		require.Empty(t, token)
	})

	t.Run("success stores token", func(t *testing.T) {
		resp, err := auth.Login(ctx, LoginRequest{Username: "ada", Password: "secret-pass"})
		require.NoError(t, err)
		require.Equal(t, ProfileSuperAdmin, resp.User.ProfileType)

		token, _ := session.Token(ctx)
		require.Equal(t, "tok-1", token)
	})

	t.Run("logout clears even on failure", func(t *testing.T) {
		err := auth.Logout(ctx)
		require.Error(t, err)

		token, _ := session.Token(ctx)
		require.Empty(t, token)
	})
}

func TestCommunitiesCreateMultipart(t *testing.T) {
	t.Parallel()

	var got struct {
		contentType string
		fields      map[string]string
		logo        string
		logoType    string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))

		got.fields = map[string]string{}
		for key, vals := range r.MultipartForm.Value {
			got.fields[key] = vals[0]
		}

		file, header, err := r.FormFile("logo")
		require.NoError(t, err)
		defer file.Close()
		raw, _ := io.ReadAll(file)
		got.logo = string(raw)
		got.logoType = header.Header.Get("Content-Type")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"created","data":{"id":"c1","communityId":"green-acres","name":"Green Acres"}}`))
	}))
	defer srv.Close()

	req := validCommunityRequest()
	req.Logo = &File{Name: "logo.png", ContentType: "image/png", Data: []byte("png-bytes")}

	community, err := NewClient(srv.URL, NewMemorySession("t")).Communities().Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "c1", community.ID)

	require.True(t, strings.HasPrefix(got.contentType, "multipart/form-data; boundary="))
	require.Equal(t, "green-acres", got.fields["communityId"])
	require.Equal(t, "Lagos", got.fields["city"])
	require.Equal(t, "admin@greenacres.ng", got.fields["adminEmail"])
	require.NotContains(t, got.fields, "adminPhone")
	require.Equal(t, "png-bytes", got.logo)
	require.Equal(t, "image/png", got.logoType)
}

func TestCheckCommunityID(t *testing.T) {
	t.Parallel()

	srv, rec := newBackend(t, http.StatusOK, "application/json", `{"data":{"available":false}}`)
	avail, err := NewClient(srv.URL, nil).Communities().CheckCommunityID(context.Background(), "green acres")
	require.NoError(t, err)
	require.False(t, avail.Available)
	require.Equal(t, "green acres", avail.Value)
	require.Equal(t, "/communities/check-id", rec.path)
	require.Equal(t, "communityId=green+acres", rec.query)
}

func TestPathEscaping(t *testing.T) {
	t.Parallel()

	srv, rec := newBackend(t, http.StatusNoContent, "", "")
	err := NewClient(srv.URL, nil).Users().Delete(context.Background(), "a/b")
	require.NoError(t, err)
	require.Equal(t, "/users/a%2Fb", rec.raw)
	require.Equal(t, http.MethodDelete, rec.method)
}
