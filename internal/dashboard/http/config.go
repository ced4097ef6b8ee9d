package http

import (
	"net/http"

	"github.com/zamanihq/dashboard/pkg/httpx"
)

// ClientConfig is what the browser needs to reach the API.
type ClientConfig struct {
	// APIBaseURL is NEXT_PUBLIC_API_BASE_URL, used for direct calls.
	APIBaseURL string `json:"apiBaseUrl,omitempty"`

	// ProxyPath is the same-origin prefix of the backend proxy.
	ProxyPath string `json:"proxyPath"`

	Version string `json:"version"`
}

// ClientConfigHandler godoc
//
//	@Summary		Browser configuration
//	@Description	Returns the client-visible API origin and the proxy prefix. BACKEND_API_URL is never exposed.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	ClientConfig
//	@Router			/v1/config [get].
func ClientConfigHandler(publicAPIBase, version string) http.HandlerFunc {
	cfg := ClientConfig{
		APIBaseURL: publicAPIBase,
		ProxyPath:  ProxyPrefix,
		Version:    version,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, cfg)
	}
}
