package http

import (
	"net/http"
	"time"

	"github.com/zamanihq/dashboard/pkg/httpx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning status, uptime and version. Always 200 while the gateway runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	zamanisdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := zamanisdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
