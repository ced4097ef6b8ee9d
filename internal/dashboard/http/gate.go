package http

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/zamanihq/dashboard/internal/dashboard/permission"
	"github.com/zamanihq/dashboard/pkg/httpx"
	"github.com/zamanihq/dashboard/pkg/jwtx"
	"github.com/zamanihq/dashboard/pkg/slogx"
)

// RedirectCookie remembers the page an unauthenticated visitor asked for.
const RedirectCookie = "redirectAfterLogin"

// TokenUsable reports whether token may still be presented. JWTs are parsed
// without verification and rejected once expired; opaque tokens are accepted
// as they are, the backend decides.
func TokenUsable(token string, now time.Time) bool {
	return jwtx.Usable(token, now)
}

// PageGate serves the dashboard's static build and keeps protected pages
// behind a session. Unknown files fall back to index.html.
type PageGate struct {
	Dir string

	// Resolve, when set, is used to hide pages the caller's profile may not
	// open; such requests are sent to the dashboard home.
	Resolve httpx.ProfileResolver

	Now func() time.Time
}

func (g *PageGate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		httpx.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if route, ok := permission.RouteFor(r.URL.Path); ok && !route.Public {
		token := sessionCookie(r)
		if !TokenUsable(token, g.now()) {
			http.SetCookie(w, &http.Cookie{
				Name:     RedirectCookie,
				Value:    r.URL.RequestURI(),
				Path:     "/",
				SameSite: http.SameSiteLaxMode,
			})
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		if g.Resolve != nil && !g.allowed(ctx, token, route) {
			log.Info("page not permitted for profile", "section", string(route.Section))
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
	}

	g.serveFile(w, r)
}

func (g *PageGate) allowed(ctx context.Context, token string, route permission.Route) bool {
	profileType, err := g.Resolve(ctx, token)
	if err != nil {
		// The page itself reports backend failures
		slogx.FromContext(ctx).Warn("profile lookup failed", "err", err)
		return true
	}
	return permission.HasPermission(profileType, string(route.Section))
}

func (g *PageGate) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// serveFile serves the request path, path.html or path/index.html, falling
// back to the root index.html for client-side routes.
func (g *PageGate) serveFile(w http.ResponseWriter, r *http.Request) {
	clean := path.Clean("/" + r.URL.Path)
	candidates := []string{clean, clean + ".html", path.Join(clean, "index.html"), "/index.html"}

	for _, c := range candidates {
		full := filepath.Join(g.Dir, filepath.FromSlash(c))
		info, err := os.Stat(full)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				slogx.FromContext(r.Context()).Warn("static lookup failed", "file", full, "err", err)
			}
			continue
		}
		if info.IsDir() {
			continue
		}
		if strings.HasSuffix(c, ".html") {
			httpx.NoCache(w)
		}
		http.ServeFile(w, r, full)
		return
	}

	http.NotFound(w, r)
}

func sessionCookie(r *http.Request) string {
	c, err := r.Cookie(httpx.TokenCookie)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}
