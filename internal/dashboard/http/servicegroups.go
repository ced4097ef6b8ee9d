package http

import (
	"net/http"

	"github.com/zamanihq/dashboard/internal/dashboard/resource"
	"github.com/zamanihq/dashboard/internal/dashboard/servicegroup"
	"github.com/zamanihq/dashboard/pkg/httpx"
	"github.com/zamanihq/dashboard/pkg/slogx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// serviceListLimit is large enough to hold every service of a community.
const serviceListLimit = 500

// ServiceGroupsResponse is the utilities page layout.
type ServiceGroupsResponse struct {
	Groups []servicegroup.Card `json:"groups"`

	// Overflow lists categories that found no free slot.
	Overflow []string `json:"overflow"`
}

type ServiceGroupsHandler struct {
	// Hooks returns resource hooks bound to the caller's token.
	Hooks     func(token string) *resource.Hooks
	Templates []servicegroup.Template
}

// ServeHTTP groups the caller's services into the utilities cards.
//
//	@Summary		Utility service groups
//	@Description	Fetches the caller's services and assigns their categories to the six utility cards.
//	@Tags			Dashboard
//	@Security		BearerAuth
//	@Produce		json
//	@Param			communityId	query		string	false	"Restrict to one community"
//	@Success		200			{object}	ServiceGroupsResponse
//	@Failure		401			{object}	httpx.ErrorResponse	"Missing or rejected token"
//	@Failure		403			{object}	httpx.ErrorResponse	"Profile cannot open utilities"
//	@Router			/v1/service-groups [get].
func (h *ServiceGroupsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	params := zamanisdk.ListParams{
		Limit:       serviceListLimit,
		CommunityID: r.URL.Query().Get("communityId"),
	}
	services, err := h.Hooks(httpx.TokenFromContext(ctx)).Services().List(params).Fetch(ctx)
	if err != nil {
		log.Warn("failed to load services", "err", err)
		httpx.WriteSDKError(w, err, "Failed to load services")
		return
	}

	templates := h.Templates
	if len(templates) == 0 {
		templates = servicegroup.DefaultTemplates
	}
	cards, overflow := servicegroup.Build(services.Items, templates)
	if overflow == nil {
		overflow = []string{}
	}

	httpx.WriteJSON(w, http.StatusOK, ServiceGroupsResponse{Groups: cards, Overflow: overflow})
}
