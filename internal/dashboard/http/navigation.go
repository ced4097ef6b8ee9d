package http

import (
	"net/http"

	"github.com/zamanihq/dashboard/internal/dashboard/permission"
	"github.com/zamanihq/dashboard/pkg/httpx"
)

// NavigationResponse lists the sections the caller may open.
type NavigationResponse struct {
	ProfileType string               `json:"profileType"`
	Sections    []permission.Section `json:"sections"`
}

// NavigationHandler returns the caller's navigation. It must run after
// httpx.AuthnMiddleware.
//
//	@Summary		Navigation sections
//	@Description	Returns the caller's profile type and the navigation sections it grants, in display order.
//	@Tags			Dashboard
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	NavigationResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or rejected token"
//	@Failure		502	{object}	httpx.ErrorResponse	"Unable to reach the backend server."
//	@Router			/v1/navigation [get].
func NavigationHandler(w http.ResponseWriter, r *http.Request) {
	profileType := httpx.ProfileTypeFromContext(r.Context())

	sections := permission.AllowedSections(profileType)
	if sections == nil {
		sections = []permission.Section{}
	}

	httpx.WriteJSON(w, http.StatusOK, NavigationResponse{
		ProfileType: profileType,
		Sections:    sections,
	})
}
