package view

import (
	"github.com/simplete/storefront/internal/authz"
	"github.com/simplete/storefront/internal/domain"
)

// PermissionDeniedMessage is shown in place of any admin section the
// current role-set may not see.
const PermissionDeniedMessage = "You do not have permission to view this page."

// SectionView is the outcome of composing one admin section: either
// the section is allowed to mount (and fetch its data), or a
// permission-denied placeholder is rendered instead. Composition is a
// pure decision; it performs no network calls itself.
type SectionView struct {
	Section     authz.Section
	Allowed     bool
	Title       string
	Placeholder string
}

var sectionTitles = map[authz.Section]string{
	authz.SectionProducts: "Manage Products",
	authz.SectionOrders:   "Manage Orders",
	authz.SectionUsers:    "Manage Users",
	authz.SectionReports:  "Manage Reports",
}

// ComposeAdmin decides what a role-set sees for a requested admin
// section.
func ComposeAdmin(policy authz.Policy, roles domain.RoleSet, section authz.Section) SectionView {
	if !policy.CanView(roles, section) {
		return SectionView{
			Section:     section,
			Placeholder: PermissionDeniedMessage,
		}
	}
	return SectionView{
		Section: section,
		Allowed: true,
		Title:   sectionTitles[section],
	}
}

// chromeless lists the routes rendered without header/footer chrome.
var chromeless = map[string]bool{
	"/login":    true,
	"/register": true,
}

// ShowChrome reports whether the header and footer appear on a route.
func ShowChrome(route string) bool {
	return !chromeless[route]
}
