package zamanisdk

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// Envelope & Pagination
// ============================================================================

// Envelope is the wrapper every Zamani endpoint responds with.
type Envelope[T any] struct {
	Message string    `json:"message,omitempty"`
	Data    T         `json:"data"`
	Meta    *PageMeta `json:"meta,omitempty"`
}

// Validate validates the wrapped data.
func (e *Envelope[T]) Validate() error {
	return validateValue(e.Data)
}

// PageMeta describes one page of a collection.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// List is a page of items plus its pagination metadata.
type List[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// ListParams are the filters shared by collection endpoints. Zero values are
// omitted from the query string.
type ListParams struct {
	Page        int
	Limit       int
	Search      string
	Status      string
	Category    string
	CommunityID string
}

// Values renders the params as query values.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.CommunityID != "" {
		v.Set("communityId", p.CommunityID)
	}
	return v
}

// Key is a canonical string for the params, used in query cache keys.
func (p ListParams) Key() string {
	return p.Values().Encode()
}

var errMissingID = errors.New("missing id")

// ============================================================================
// Auth & Users
// ============================================================================

// Profile types as reported by the backend.
const (
	ProfileSuperAdmin     = "Super Admin"
	ProfileCommunityAdmin = "Community Admin"
	ProfileResident       = "Resident"
	ProfileDeveloper      = "Developer"
	ProfileSystem         = "System"
)

// User is a backend user profile.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ProfileType string `json:"profileType"`
	CommunityID string `json:"communityId,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (u User) Validate() error {
	if u.ID == "" {
		return errMissingID
	}
	return nil
}

// DisplayName returns "First Last" falling back to the username.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (l LoginResponse) Validate() error {
	if l.Token == "" {
		return errors.New("missing token")
	}
	return nil
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	CommunityID     string `json:"communityId,omitempty"`
}

// SetPasswordRequest is the body of POST /auth/set-password.
type SetPasswordRequest struct {
	Token           string `json:"token,omitempty"`
	Username        string `json:"username,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UpdateUserRequest is the body of PATCH /users/{id}.
type UpdateUserRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Availability is the answer of the username / community ID checks.
type Availability struct {
	Available bool   `json:"available"`
	Value     string `json:"value,omitempty"`
}

// ============================================================================
// Communities & Streets
// ============================================================================

// Address is a postal address.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// Community is an estate managed on the platform.
type Community struct {
	ID          string     `json:"id"`
	CommunityID string     `json:"communityId"`
	Name        string     `json:"name"`
	Address     Address    `json:"address"`
	AdminName   string     `json:"adminName,omitempty"`
	AdminEmail  string     `json:"adminEmail,omitempty"`
	AdminPhone  string     `json:"adminPhone,omitempty"`
	LogoURL     string     `json:"logoUrl,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

func (c Community) Validate() error {
	if c.ID == "" {
		return errMissingID
	}
	return nil
}

// UpdateCommunityRequest is the body of PATCH /communities/{id}.
type UpdateCommunityRequest struct {
	Name       string   `json:"name,omitempty"`
	Address    *Address `json:"address,omitempty"`
	AdminEmail string   `json:"adminEmail,omitempty"`
	AdminPhone string   `json:"adminPhone,omitempty"`
}

// Street is a street inside a community.
type Street struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CommunityID string `json:"communityId"`
}

func (s Street) Validate() error {
	if s.ID == "" {
		return errMissingID
	}
	return nil
}

// CreateStreetRequest is the body of POST /communities/{id}/streets.
type CreateStreetRequest struct {
	Name string `json:"name"`
}

// ============================================================================
// Access codes
// ============================================================================

// AccessCodeStatus is the lifecycle state of an access code.
type AccessCodeStatus string

const (
	AccessCodeOpen      AccessCodeStatus = "Open"
	AccessCodeUsed      AccessCodeStatus = "Used"
	AccessCodeCancelled AccessCodeStatus = "Cancelled"
)

// Valid reports whether s is one of the known states.
func (s AccessCodeStatus) Valid() bool {
	switch s {
	case AccessCodeOpen, AccessCodeUsed, AccessCodeCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is possible.
func (s AccessCodeStatus) Terminal() bool {
	return s == AccessCodeUsed || s == AccessCodeCancelled
}

// AccessCode is a short numeric code granted to a visitor.
type AccessCode struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	Category    string           `json:"category,omitempty"`
	Status      AccessCodeStatus `json:"status"`
	VisitorName string           `json:"visitorName,omitempty"`
	ResidentID  string           `json:"residentId,omitempty"`
	GeneratedAt *time.Time       `json:"generatedAt,omitempty"`
	ExpiresAt   *time.Time       `json:"expiresAt,omitempty"`
}

func (a AccessCode) Validate() error {
	if a.ID == "" {
		return errMissingID
	}
	if !a.Status.Valid() {
		return fmt.Errorf("unknown access code status %q", a.Status)
	}
	return nil
}

// CanCancel reports whether the cancel action applies. Only open codes can
// be cancelled; Used and Cancelled are terminal.
func (a AccessCode) CanCancel() bool {
	return a.Status == AccessCodeOpen
}

// GenerateAccessCodeRequest is the body of POST /access-codes.
type GenerateAccessCodeRequest struct {
	Category    string     `json:"category"`
	VisitorName string     `json:"visitorName,omitempty"`
	Length      int        `json:"length,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// ValidateAccessCodeRequest is the body of POST /access-codes/validate.
type ValidateAccessCodeRequest struct {
	Code string `json:"code"`
}

// ============================================================================
// Wallets & Dues
// ============================================================================

// Wallet is a balance holder. Balance is kept as a decimal, never a float.
type Wallet struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"isActive"`
	ProfileType string          `json:"profileType,omitempty"`
}

func (w Wallet) Validate() error {
	if w.ID == "" {
		return errMissingID
	}
	return nil
}

// CreateWalletRequest is the body of POST /wallets.
type CreateWalletRequest struct {
	Name           string `json:"name"`
	ProfileType    string `json:"profileType"`
	OpeningBalance string `json:"openingBalance,omitempty"`
}

// UpdateWalletRequest is the body of PATCH /wallets/{id}.
type UpdateWalletRequest struct {
	Name     string `json:"name,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// Due is a recurring levy charged to residents.
type Due struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency,omitempty"`
	CommunityID string          `json:"communityId,omitempty"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
}

func (d Due) Validate() error {
	if d.ID == "" {
		return errMissingID
	}
	return nil
}

// CreateDueRequest is the body of POST /dues.
type CreateDueRequest struct {
	Title       string     `json:"title"`
	Amount      string     `json:"amount"`
	Frequency   string     `json:"frequency"`
	CommunityID string     `json:"communityId,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// ============================================================================
// Partners, Integrations, Services, Residents, Admins
// ============================================================================

// Partner is a third-party vendor working with communities.
type Partner struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	ServiceType  string   `json:"serviceType,omitempty"`
	ContactName  string   `json:"contactName,omitempty"`
	Status       string   `json:"status,omitempty"`
	CommunityIDs []string `json:"communityIds,omitempty"`
}

func (p Partner) Validate() error {
	if p.ID == "" {
		return errMissingID
	}
	return nil
}

// PartnerRequest is the body for creating or updating a partner.
type PartnerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	ServiceType string `json:"serviceType"`
	ContactName string `json:"contactName,omitempty"`
}

// Integration is a configured external provider.
type Integration struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Category  string `json:"category,omitempty"`
	IsEnabled bool   `json:"isEnabled"`
}

func (i Integration) Validate() error {
	if i.ID == "" {
		return errMissingID
	}
	return nil
}

// IntegrationRequest is the body of POST /integrations.
type IntegrationRequest struct {
	Name     string            `json:"name"`
	Provider string            `json:"provider"`
	Category string            `json:"category,omitempty"`
	Config   map[string]string `json:"config,omitempty"`
}

// Service is a utility service offered in a community.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

func (s Service) Validate() error {
	if s.ID == "" {
		return errMissingID
	}
	return nil
}

// ServiceRequest is the body for creating or updating a service.
type ServiceRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// Resident is a resident record awaiting or holding approval.
type Resident struct {
	ID          string `json:"id"`
	UserID      string `json:"userId,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	CommunityID string `json:"communityId,omitempty"`
	StreetID    string `json:"streetId,omitempty"`
	HouseNumber string `json:"houseNumber,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (r Resident) Validate() error {
	if r.ID == "" {
		return errMissingID
	}
	return nil
}

// Admin is a platform or community administrator.
type Admin struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	ProfileType string `json:"profileType"`
	CommunityID string `json:"communityId,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (a Admin) Validate() error {
	if a.ID == "" {
		return errMissingID
	}
	return nil
}

// CreateAdminRequest is the body of POST /admins.
type CreateAdminRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	ProfileType string `json:"profileType"`
	CommunityID string `json:"communityId,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by the gateway's /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks lists the readiness of each dependency.
type HealthChecks struct {
	Backend string `json:"backend"`
	Cache   string `json:"cache,omitempty"`
}
