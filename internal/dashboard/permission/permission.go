// Package permission maps profile types to the navigation sections they may
// open. It is the only client-side authorization signal; the backend still
// enforces access on every call.
package permission

import (
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// Section is a top-level navigation item.
type Section string

const (
	SectionDashboard    Section = "dashboard"
	SectionAdmins       Section = "admins"
	SectionCommunities  Section = "communities"
	SectionUsers        Section = "users"
	SectionUtilities    Section = "utilities"
	SectionWallet       Section = "wallet"
	SectionAccessCodes  Section = "access-codes"
	SectionPartners     Section = "partners"
	SectionIntegrations Section = "integrations"
	SectionSettings     Section = "settings"
)

// Sections lists every section in navigation order.
var Sections = []Section{
	SectionDashboard,
	SectionAdmins,
	SectionCommunities,
	SectionUsers,
	SectionUtilities,
	SectionWallet,
	SectionAccessCodes,
	SectionPartners,
	SectionIntegrations,
	SectionSettings,
}

type sectionSet map[Section]struct{}

func setOf(sections ...Section) sectionSet {
	s := make(sectionSet, len(sections))
	for _, sec := range sections {
		s[sec] = struct{}{}
	}
	return s
}

var matrix = map[string]sectionSet{
	zamanisdk.ProfileSuperAdmin: setOf(Sections...),
	zamanisdk.ProfileCommunityAdmin: setOf(
		SectionDashboard,
		SectionUsers,
		SectionUtilities,
		SectionWallet,
		SectionAccessCodes,
		SectionPartners,
		SectionSettings,
	),
	zamanisdk.ProfileResident: setOf(
		SectionDashboard,
		SectionWallet,
		SectionAccessCodes,
		SectionSettings,
	),
	zamanisdk.ProfileDeveloper: setOf(
		SectionDashboard,
		SectionIntegrations,
		SectionSettings,
	),
	zamanisdk.ProfileSystem: setOf(
		SectionDashboard,
		SectionCommunities,
		SectionUsers,
		SectionUtilities,
		SectionIntegrations,
		SectionSettings,
	),
}

// HasPermission reports whether profileType may open item. Unknown profile
// types and unknown items are denied.
func HasPermission(profileType, item string) bool {
	sections, ok := matrix[profileType]
	if !ok {
		return false
	}
	_, ok = sections[Section(item)]
	return ok
}

// IsSuperAdmin reports whether profileType is the platform administrator.
func IsSuperAdmin(profileType string) bool {
	return profileType == zamanisdk.ProfileSuperAdmin
}

// IsCommunityAdmin reports whether profileType administers a single community.
func IsCommunityAdmin(profileType string) bool {
	return profileType == zamanisdk.ProfileCommunityAdmin
}

// IsAdmin reports whether profileType is either administrator role.
func IsAdmin(profileType string) bool {
	return IsSuperAdmin(profileType) || IsCommunityAdmin(profileType)
}

// AllowedSections returns the sections profileType may open, in navigation
// order. Unknown profile types get none.
func AllowedSections(profileType string) []Section {
	sections, ok := matrix[profileType]
	if !ok {
		return nil
	}
	out := make([]Section, 0, len(sections))
	for _, sec := range Sections {
		if _, ok := sections[sec]; ok {
			out = append(out, sec)
		}
	}
	return out
}
