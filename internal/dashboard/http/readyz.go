package http

import (
	"context"
	"net/http"
	"time"

	"github.com/zamanihq/dashboard/pkg/httpx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BackendPinger reports the backend reachable when it answers at all. Any
// HTTP status counts; only transport failures do not.
type BackendPinger struct {
	URL    string
	Client *http.Client
}

func (p BackendPinger) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return err
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking that the backend answers and, when configured, the shared query cache
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	zamanisdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	zamanisdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	backend Pinger,
	cache Pinger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := &zamanisdk.HealthChecks{Backend: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := backend.Ping(ctx); err != nil {
			checks.Backend = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if cache != nil {
			checks.Cache = "ok"
			if err := cache.Ping(ctx); err != nil {
				checks.Cache = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		response := zamanisdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
