package httpx

import (
	"net/http"
)

// SectionChecker reports whether a profile type may open a navigation section.
type SectionChecker func(profileType, section string) bool

// RequireSection lets the request through only when the caller's profile type
// grants section. It must run after AuthnMiddleware.
func RequireSection(allowed SectionChecker, section string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed(ProfileTypeFromContext(r.Context()), section) {
				writeForbidden(w, section)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyProfile lets the request through for the listed profile types.
func RequireAnyProfile(profiles ...string) Middleware {
	want := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		want[p] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[ProfileTypeFromContext(r.Context())]; !ok {
				writeForbidden(w, "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter, section string) {
	msg := "You do not have access to this page"
	if section != "" {
		msg = "You do not have access to " + section
	}
	WriteError(w, http.StatusForbidden, msg)
}
