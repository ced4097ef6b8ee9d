package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/zamanihq/dashboard/pkg/slogx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// TokenCookie is the cookie the dashboard keeps the session token in.
const TokenCookie = "token"

// ProfileResolver maps a bearer token to the caller's profile type, usually
// by asking the backend who the token belongs to.
type ProfileResolver func(ctx context.Context, token string) (string, error)

// BearerToken extracts the token from the Authorization header, falling back
// to the session cookie.
func BearerToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// AuthnMiddleware requires a bearer token and resolves its profile type.
// Backend rejections are relayed with the backend's status and message.
func AuthnMiddleware(resolve ProfileResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := BearerToken(r)
			if token == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			profileType, err := resolve(ctx, token)
			if err != nil {
				log.Warn("profile lookup failed", "err", err)
				WriteSDKError(w, err, "failed to resolve profile")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, token, profileType)))
		})
	}
}

// WriteSDKError writes err as a {"message": ...} body. API errors keep their
// status; transport failures become 502.
func WriteSDKError(w http.ResponseWriter, err error, fallback string) {
	status := http.StatusInternalServerError

	var apiErr *zamanisdk.APIError
	var netErr *zamanisdk.NetworkError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
	case errors.As(err, &netErr):
		status = http.StatusBadGateway
	}

	WriteError(w, status, zamanisdk.UserMessage(err, fallback))
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "Unauthorized")
}
