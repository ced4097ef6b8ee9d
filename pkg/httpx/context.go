package httpx

import "context"

type ctxKey string

const (
	CtxKeyToken       ctxKey = "token"
	CtxKeyProfileType ctxKey = "profile_type"
)

// TokenFromContext returns the bearer token placed by AuthnMiddleware.
func TokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyToken).(string); ok {
		return v
	}
	return ""
}

// ProfileTypeFromContext returns the caller's profile type, or "".
func ProfileTypeFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyProfileType).(string); ok {
		return v
	}
	return ""
}

func contextWithAuth(ctx context.Context, token, profileType string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyToken, token)
	ctx = context.WithValue(ctx, CtxKeyProfileType, profileType)
	return ctx
}
