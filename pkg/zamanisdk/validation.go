package zamanisdk

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	requiredReason      = "required"
	onlyUsernameChars   = "must only contain a-z, A-Z, 0-9, _, . or -"
	passwordsMismatch   = "passwords do not match"
	maxLogoSize         = 2 << 20
	minAccessCodeLength = 4
	maxAccessCodeLength = 6
)

var (
	reUsername    = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	reCommunityID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	rePhone       = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
	reDigits      = regexp.MustCompile(`^[0-9]+$`)

	logoContentTypes = map[string]struct{}{
		"image/png":     {},
		"image/jpeg":    {},
		"image/webp":    {},
		"image/svg+xml": {},
	}

	profileTypes = map[string]struct{}{
		ProfileSuperAdmin:     {},
		ProfileCommunityAdmin: {},
		ProfileResident:       {},
		ProfileDeveloper:      {},
		ProfileSystem:         {},
	}
)

// Validate checks the login form.
func (r LoginRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = requiredReason
	}
	if r.Password == "" {
		errs["password"] = requiredReason
	}
	return errs.orNil()
}

// Validate checks the registration form.
func (r RegisterRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	requireText(errs, "firstName", r.FirstName, 64)
	requireText(errs, "lastName", r.LastName, 64)
	validateEmail(errs, "email", r.Email)
	validateUsername(errs, "username", r.Username)
	validateOptionalPhone(errs, "phone", r.Phone)
	validateNewPassword(errs, r.Password, r.ConfirmPassword)
	return errs.orNil()
}

// Validate checks the set-password form.
func (r SetPasswordRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	validateNewPassword(errs, r.Password, r.ConfirmPassword)
	if r.CurrentPassword != "" && r.CurrentPassword == r.Password {
		errs["password"] = "must differ from the current password"
	}
	return errs.orNil()
}

// Validate checks the create-community form, including the optional logo.
func (r CreateCommunityRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}

	communityID := strings.TrimSpace(r.CommunityID)
	switch {
	case communityID == "":
		errs["communityId"] = requiredReason
	case len(communityID) < 3 || len(communityID) > 32:
		errs["communityId"] = "must be 3-32 characters"
	case !reCommunityID.MatchString(communityID):
		errs["communityId"] = "must only contain a-z, A-Z, 0-9, _ or -"
	}

	requireText(errs, "name", r.Name, 100)
	requireText(errs, "street", r.Address.Street, 200)
	requireText(errs, "city", r.Address.City, 100)
	requireText(errs, "state", r.Address.State, 100)
	requireText(errs, "country", r.Address.Country, 100)

	requireText(errs, "adminFirstName", r.AdminFirstName, 64)
	requireText(errs, "adminLastName", r.AdminLastName, 64)
	validateEmail(errs, "adminEmail", r.AdminEmail)
	validateOptionalPhone(errs, "adminPhone", r.AdminPhone)
	validateUsername(errs, "adminUsername", r.AdminUsername)

	if r.Logo != nil {
		switch {
		case len(r.Logo.Data) == 0:
			errs["logo"] = "file is empty"
		case len(r.Logo.Data) > maxLogoSize:
			errs["logo"] = "file too large (max 2MB)"
		default:
			if _, ok := logoContentTypes[strings.ToLower(r.Logo.ContentType)]; !ok {
				errs["logo"] = "must be a PNG, JPEG, WebP or SVG image"
			}
		}
	}

	return errs.orNil()
}

// Validate checks the generate-access-code form.
func (r GenerateAccessCodeRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(r.Category) == "" {
		errs["category"] = requiredReason
	}
	if r.Length != 0 && (r.Length < minAccessCodeLength || r.Length > maxAccessCodeLength) {
		errs["length"] = "must be between 4 and 6"
	}
	return errs.orNil()
}

// Validate checks the access code entered for validation.
func (r ValidateAccessCodeRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	code := strings.TrimSpace(r.Code)
	switch {
	case code == "":
		errs["code"] = requiredReason
	case !reDigits.MatchString(code):
		errs["code"] = "must only contain digits"
	case len(code) < minAccessCodeLength || len(code) > maxAccessCodeLength:
		errs["code"] = "must be 4-6 digits"
	}
	return errs.orNil()
}

// Validate checks the create-wallet form.
func (r CreateWalletRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	requireText(errs, "name", r.Name, 64)
	if _, ok := profileTypes[r.ProfileType]; !ok {
		errs["profileType"] = "unknown profile type"
	}
	if r.OpeningBalance != "" {
		d, err := decimal.NewFromString(r.OpeningBalance)
		switch {
		case err != nil:
			errs["openingBalance"] = "must be a number"
		case d.IsNegative():
			errs["openingBalance"] = "must not be negative"
		}
	}
	return errs.orNil()
}

// Validate checks the create-due form.
func (r CreateDueRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	requireText(errs, "title", r.Title, 100)
	d, err := decimal.NewFromString(r.Amount)
	switch {
	case strings.TrimSpace(r.Amount) == "":
		errs["amount"] = requiredReason
	case err != nil:
		errs["amount"] = "must be a number"
	case !d.IsPositive():
		errs["amount"] = "must be greater than zero"
	}
	switch r.Frequency {
	case "once", "monthly", "quarterly", "yearly":
	case "":
		errs["frequency"] = requiredReason
	default:
		errs["frequency"] = "must be once, monthly, quarterly or yearly"
	}
	return errs.orNil()
}

// Validate checks the partner form.
func (r PartnerRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	requireText(errs, "name", r.Name, 100)
	validateEmail(errs, "email", r.Email)
	validateOptionalPhone(errs, "phone", r.Phone)
	requireText(errs, "serviceType", r.ServiceType, 64)
	return errs.orNil()
}

// Validate checks the service form.
func (r ServiceRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	requireText(errs, "name", r.Name, 100)
	requireText(errs, "category", r.Category, 64)
	return errs.orNil()
}

// Validate checks the create-admin form.
func (r CreateAdminRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	requireText(errs, "name", r.Name, 100)
	validateEmail(errs, "email", r.Email)
	switch r.ProfileType {
	case ProfileSuperAdmin:
	case ProfileCommunityAdmin:
		if strings.TrimSpace(r.CommunityID) == "" {
			errs["communityId"] = "required for community admins"
		}
	default:
		errs["profileType"] = "must be an administrator profile"
	}
	return errs.orNil()
}

func requireText(errs ValidationErrors, field, value string, maxLen int) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		errs[field] = requiredReason
	case len(value) > maxLen:
		errs[field] = "too long"
	}
}

func validateEmail(errs ValidationErrors, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		errs[field] = requiredReason
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		errs[field] = "invalid email address"
	}
}

func validateOptionalPhone(errs ValidationErrors, field, value string) {
	if value == "" {
		return
	}
	if !rePhone.MatchString(value) {
		errs[field] = "invalid phone number"
	}
}

func validateUsername(errs ValidationErrors, field, value string) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		errs[field] = requiredReason
	case len(value) < 3 || len(value) > 32:
		errs[field] = "must be 3-32 characters"
	case !reUsername.MatchString(value):
		errs[field] = onlyUsernameChars
	}
}

func validateNewPassword(errs ValidationErrors, password, confirm string) {
	switch {
	case password == "":
		errs["password"] = requiredReason
	case len(password) < 8:
		errs["password"] = "too short (min 8)"
	case len(password) > 128:
		errs["password"] = "too long (max 128)"
	}
	if confirm != password {
		errs["confirmPassword"] = passwordsMismatch
	}
}
