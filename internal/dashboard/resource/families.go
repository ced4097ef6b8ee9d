package resource

import (
	"context"

	"github.com/zamanihq/dashboard/internal/dashboard/querycache"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// Resource names used as the first key segment.
const (
	KeyAuth         = "auth"
	KeyCommunities  = "communities"
	KeyStreets      = "streets"
	KeyUsers        = "users"
	KeyWallets      = "wallets"
	KeyAccessCodes  = "access-codes"
	KeyDues         = "dues"
	KeyPartners     = "partners"
	KeyIntegrations = "integrations"
	KeyServices     = "services"
	KeyResidents    = "residents"
	KeyAdmins       = "admins"
)

func listKey(resource string, p zamanisdk.ListParams) querycache.Key {
	return querycache.Key{resource, "list", p.Key()}
}

func itemKey(resource, id string) querycache.Key {
	return querycache.Key{resource, "item", id}
}

// ============================================================================
// Auth
// ============================================================================

type AuthHooks struct{ h *Hooks }

func (h *Hooks) Auth() AuthHooks { return AuthHooks{h} }

// Me is the profile of the current session.
func (a AuthHooks) Me() *Query[*zamanisdk.User] {
	return newQuery(a.h, querycache.Key{KeyAuth, "me"}, a.h.client.Auth().Me)
}

// CheckUsername asks whether username is free.
func (a AuthHooks) CheckUsername(username string) *Query[*zamanisdk.Availability] {
	return newQuery(a.h, querycache.Key{KeyAuth, "check-username", username},
		func(ctx context.Context) (*zamanisdk.Availability, error) {
			return a.h.client.Auth().CheckUsername(ctx, username)
		})
}

// Login stores the token and drops everything cached for the previous session.
func (a AuthHooks) Login() *Mutation[zamanisdk.LoginRequest, *zamanisdk.LoginResponse] {
	return newMutation(a.h, a.h.client.Auth().Login, querycache.Key{})
}

// Logout clears the token and the cache.
func (a AuthHooks) Logout() *Mutation[Nothing, Nothing] {
	return newMutation(a.h, func(ctx context.Context, _ Nothing) (Nothing, error) {
		return Nothing{}, a.h.client.Auth().Logout(ctx)
	}, querycache.Key{})
}

func (a AuthHooks) Register() *Mutation[zamanisdk.RegisterRequest, *zamanisdk.User] {
	return newMutation(a.h, a.h.client.Auth().Register)
}

func (a AuthHooks) SetPassword() *Mutation[zamanisdk.SetPasswordRequest, Nothing] {
	return newMutation(a.h, noContent(a.h.client.Auth().SetPassword))
}

// ============================================================================
// Communities & Streets
// ============================================================================

type CommunityHooks struct{ h *Hooks }

func (h *Hooks) Communities() CommunityHooks { return CommunityHooks{h} }

func (c CommunityHooks) List(p zamanisdk.ListParams) *Query[*zamanisdk.List[zamanisdk.Community]] {
	return newQuery(c.h, listKey(KeyCommunities, p), func(ctx context.Context) (*zamanisdk.List[zamanisdk.Community], error) {
		return c.h.client.Communities().List(ctx, p)
	})
}

func (c CommunityHooks) Get(id string) *Query[*zamanisdk.Community] {
	return newQuery(c.h, itemKey(KeyCommunities, id), func(ctx context.Context) (*zamanisdk.Community, error) {
		return c.h.client.Communities().Get(ctx, id)
	})
}

// CheckCommunityID asks whether communityID is free.
func (c CommunityHooks) CheckCommunityID(communityID string) *Query[*zamanisdk.Availability] {
	return newQuery(c.h, querycache.Key{KeyCommunities, "check-id", communityID},
		func(ctx context.Context) (*zamanisdk.Availability, error) {
			return c.h.client.Communities().CheckCommunityID(ctx, communityID)
		})
}

func (c CommunityHooks) Create() *Mutation[zamanisdk.CreateCommunityRequest, *zamanisdk.Community] {
	return newMutation(c.h, c.h.client.Communities().Create, querycache.Key{KeyCommunities})
}

func (c CommunityHooks) Update() *Mutation[Update[zamanisdk.UpdateCommunityRequest], *zamanisdk.Community] {
	return newMutation(c.h, func(ctx context.Context, in Update[zamanisdk.UpdateCommunityRequest]) (*zamanisdk.Community, error) {
		return c.h.client.Communities().Update(ctx, in.ID, in.Req)
	}, querycache.Key{KeyCommunities})
}

func (c CommunityHooks) Delete() *Mutation[string, Nothing] {
	return newMutation(c.h, noContent(c.h.client.Communities().Delete), querycache.Key{KeyCommunities})
}

type StreetHooks struct{ h *Hooks }

func (h *Hooks) Streets() StreetHooks { return StreetHooks{h} }

func (s StreetHooks) List(communityID string) *Query[[]zamanisdk.Street] {
	return newQuery(s.h, querycache.Key{KeyStreets, communityID}, func(ctx context.Context) ([]zamanisdk.Street, error) {
		return s.h.client.Streets().List(ctx, communityID)
	})
}

// CreateStreet is the input of StreetHooks.Create.
type CreateStreet struct {
	CommunityID string
	Req         zamanisdk.CreateStreetRequest
}

func (s StreetHooks) Create() *Mutation[CreateStreet, *zamanisdk.Street] {
	m := newMutation(s.h, func(ctx context.Context, in CreateStreet) (*zamanisdk.Street, error) {
		return s.h.client.Streets().Create(ctx, in.CommunityID, in.Req)
	})
	m.invalidates = func(in CreateStreet) []querycache.Key {
		return []querycache.Key{{KeyStreets, in.CommunityID}}
	}
	return m
}

// ============================================================================
// Users, Residents & Admins
// ============================================================================

type UserHooks struct{ h *Hooks }

func (h *Hooks) Users() UserHooks { return UserHooks{h} }

func (u UserHooks) List(p zamanisdk.ListParams) *Query[*zamanisdk.List[zamanisdk.User]] {
	return newQuery(u.h, listKey(KeyUsers, p), func(ctx context.Context) (*zamanisdk.List[zamanisdk.User], error) {
		return u.h.client.Users().List(ctx, p)
	})
}

func (u UserHooks) Get(id string) *Query[*zamanisdk.User] {
	return newQuery(u.h, itemKey(KeyUsers, id), func(ctx context.Context) (*zamanisdk.User, error) {
		return u.h.client.Users().Get(ctx, id)
	})
}

func (u UserHooks) Update() *Mutation[Update[zamanisdk.UpdateUserRequest], *zamanisdk.User] {
	return newMutation(u.h, func(ctx context.Context, in Update[zamanisdk.UpdateUserRequest]) (*zamanisdk.User, error) {
		return u.h.client.Users().Update(ctx, in.ID, in.Req)
	}, querycache.Key{KeyUsers})
}

func (u UserHooks) Delete() *Mutation[string, Nothing] {
	return newMutation(u.h, noContent(u.h.client.Users().Delete), querycache.Key{KeyUsers})
}

type ResidentHooks struct{ h *Hooks }

func (h *Hooks) Residents() ResidentHooks { return ResidentHooks{h} }

func (r ResidentHooks) List(p zamanisdk.ListParams) *Query[*zamanisdk.List[zamanisdk.Resident]] {
	return newQuery(r.h, listKey(KeyResidents, p), func(ctx context.Context) (*zamanisdk.List[zamanisdk.Resident], error) {
		return r.h.client.Residents().List(ctx, p)
	})
}

func (r ResidentHooks) Get(id string) *Query[*zamanisdk.Resident] {
	return newQuery(r.h, itemKey(KeyResidents, id), func(ctx context.Context) (*zamanisdk.Resident, error) {
		return r.h.client.Residents().Get(ctx, id)
	})
}

// Approve also refreshes users, since approval activates the resident's account.
func (r ResidentHooks) Approve() *Mutation[string, *zamanisdk.Resident] {
	return newMutation(r.h, r.h.client.Residents().Approve, querycache.Key{KeyResidents}, querycache.Key{KeyUsers})
}

type AdminHooks struct{ h *Hooks }

func (h *Hooks) Admins() AdminHooks { return AdminHooks{h} }

func (a AdminHooks) List(p zamanisdk.ListParams) *Query[*zamanisdk.List[zamanisdk.Admin]] {
	return newQuery(a.h, listKey(KeyAdmins, p), func(ctx context.Context) (*zamanisdk.List[zamanisdk.Admin], error) {
		return a.h.client.Admins().List(ctx, p)
	})
}

func (a AdminHooks) Create() *Mutation[zamanisdk.CreateAdminRequest, *zamanisdk.Admin] {
	return newMutation(a.h, a.h.client.Admins().Create, querycache.Key{KeyAdmins}, querycache.Key{KeyUsers})
}

func (a AdminHooks) Delete() *Mutation[string, Nothing] {
	return newMutation(a.h, noContent(a.h.client.Admins().Delete), querycache.Key{KeyAdmins}, querycache.Key{KeyUsers})
}

// ============================================================================
// Wallets & Dues
// ============================================================================

type WalletHooks struct{ h *Hooks }

func (h *Hooks) Wallets() WalletHooks { return WalletHooks{h} }

func (w WalletHooks) List(p zamanisdk.ListParams) *Query[*zamanisdk.List[zamanisdk.Wallet]] {
	return newQuery(w.h, listKey(KeyWallets, p), func(ctx context.Context) (*zamanisdk.List[zamanisdk.Wallet], error) {
		return w.h.client.Wallets().List(ctx, p)
	})
}

func (w WalletHooks) Get(id string) *Query[*zamanisdk.Wallet] {
	return newQuery(w.h, itemKey(KeyWallets, id), func(ctx context.Context) (*zamanisdk.Wallet, error) {
		return w.h.client.Wallets().Get(ctx, id)
	})
}

func (w WalletHooks) Create() *Mutation[zamanisdk.CreateWalletRequest, *zamanisdk.Wallet] {
	return newMutation(w.h, w.h.client.Wallets().Create, querycache.Key{KeyWallets})
}

func (w WalletHooks) Update() *Mutation[Update[zamanisdk.UpdateWalletRequest], *zamanisdk.Wallet] {
	return newMutation(w.h, func(ctx context.Context, in Update[zamanisdk.UpdateWalletRequest]) (*zamanisdk.Wallet, error) {
		return w.h.client.Wallets().Update(ctx, in.ID, in.Req)
	}, querycache.Key{KeyWallets})
}

type DueHooks struct{ h *Hooks }

func (h *Hooks) Dues() DueHooks { return DueHooks{h} }

func (d DueHooks) List(p zamanisdk.ListParams) *Query[*zamanisdk.List[zamanisdk.Due]] {
	return newQuery(d.h, listKey(KeyDues, p), func(ctx context.Context) (*zamanisdk.List[zamanisdk.Due], error) {
		return d.h.client.Dues().List(ctx, p)
	})
}

func (d DueHooks) Create() *Mutation[zamanisdk.CreateDueRequest, *zamanisdk.Due] {
	return newMutation(d.h, d.h.client.Dues().Create, querycache.Key{KeyDues})
}

func (d DueHooks) Delete() *Mutation[string, Nothing] {
	return newMutation(d.h, noContent(d.h.client.Dues().Delete), querycache.Key{KeyDues})
}

// ============================================================================
// Access codes
// ============================================================================

type AccessCodeHooks struct{ h *Hooks }

func (h *Hooks) AccessCodes() AccessCodeHooks { return AccessCodeHooks{h} }

func (a AccessCodeHooks) List(p zamanisdk.ListParams) *Query[*zamanisdk.List[zamanisdk.AccessCode]] {
	return newQuery(a.h, listKey(KeyAccessCodes, p), func(ctx context.Context) (*zamanisdk.List[zamanisdk.AccessCode], error) {
		return a.h.client.AccessCodes().List(ctx, p)
	})
}

func (a AccessCodeHooks) Generate() *Mutation[zamanisdk.GenerateAccessCodeRequest, *zamanisdk.AccessCode] {
	return newMutation(a.h, a.h.client.AccessCodes().Generate, querycache.Key{KeyAccessCodes})
}

func (a AccessCodeHooks) Validate() *Mutation[zamanisdk.ValidateAccessCodeRequest, *zamanisdk.AccessCode] {
	return newMutation(a.h, a.h.client.AccessCodes().Validate, querycache.Key{KeyAccessCodes})
}

// Cancel refuses codes whose known status is terminal without calling the
// backend.
func (a AccessCodeHooks) Cancel() *Mutation[zamanisdk.AccessCode, *zamanisdk.AccessCode] {
	return newMutation(a.h, a.h.client.AccessCodes().CancelCode, querycache.Key{KeyAccessCodes})
}

// ============================================================================
// Partners, Integrations & Services
// ============================================================================

type PartnerHooks struct{ h *Hooks }

func (h *Hooks) Partners() PartnerHooks { return PartnerHooks{h} }

func (p PartnerHooks) List(params zamanisdk.ListParams) *Query[*zamanisdk.List[zamanisdk.Partner]] {
	return newQuery(p.h, listKey(KeyPartners, params), func(ctx context.Context) (*zamanisdk.List[zamanisdk.Partner], error) {
		return p.h.client.Partners().List(ctx, params)
	})
}

func (p PartnerHooks) Create() *Mutation[zamanisdk.PartnerRequest, *zamanisdk.Partner] {
	return newMutation(p.h, p.h.client.Partners().Create, querycache.Key{KeyPartners})
}

func (p PartnerHooks) Update() *Mutation[Update[zamanisdk.PartnerRequest], *zamanisdk.Partner] {
	return newMutation(p.h, func(ctx context.Context, in Update[zamanisdk.PartnerRequest]) (*zamanisdk.Partner, error) {
		return p.h.client.Partners().Update(ctx, in.ID, in.Req)
	}, querycache.Key{KeyPartners})
}

func (p PartnerHooks) Delete() *Mutation[string, Nothing] {
	return newMutation(p.h, noContent(p.h.client.Partners().Delete), querycache.Key{KeyPartners})
}

type IntegrationHooks struct{ h *Hooks }

func (h *Hooks) Integrations() IntegrationHooks { return IntegrationHooks{h} }

func (i IntegrationHooks) List(p zamanisdk.ListParams) *Query[*zamanisdk.List[zamanisdk.Integration]] {
	return newQuery(i.h, listKey(KeyIntegrations, p), func(ctx context.Context) (*zamanisdk.List[zamanisdk.Integration], error) {
		return i.h.client.Integrations().List(ctx, p)
	})
}

func (i IntegrationHooks) Create() *Mutation[zamanisdk.IntegrationRequest, *zamanisdk.Integration] {
	return newMutation(i.h, i.h.client.Integrations().Create, querycache.Key{KeyIntegrations})
}

func (i IntegrationHooks) Toggle() *Mutation[string, *zamanisdk.Integration] {
	return newMutation(i.h, i.h.client.Integrations().Toggle, querycache.Key{KeyIntegrations})
}

type ServiceHooks struct{ h *Hooks }

func (h *Hooks) Services() ServiceHooks { return ServiceHooks{h} }

func (s ServiceHooks) List(p zamanisdk.ListParams) *Query[*zamanisdk.List[zamanisdk.Service]] {
	return newQuery(s.h, listKey(KeyServices, p), func(ctx context.Context) (*zamanisdk.List[zamanisdk.Service], error) {
		return s.h.client.Services().List(ctx, p)
	})
}

func (s ServiceHooks) Create() *Mutation[zamanisdk.ServiceRequest, *zamanisdk.Service] {
	return newMutation(s.h, s.h.client.Services().Create, querycache.Key{KeyServices})
}

func (s ServiceHooks) Update() *Mutation[Update[zamanisdk.ServiceRequest], *zamanisdk.Service] {
	return newMutation(s.h, func(ctx context.Context, in Update[zamanisdk.ServiceRequest]) (*zamanisdk.Service, error) {
		return s.h.client.Services().Update(ctx, in.ID, in.Req)
	}, querycache.Key{KeyServices})
}

func (s ServiceHooks) Delete() *Mutation[string, Nothing] {
	return newMutation(s.h, noContent(s.h.client.Services().Delete), querycache.Key{KeyServices})
}
