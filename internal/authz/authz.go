// Package authz is the single source of truth for role-based access.
// Views never inspect the role slice directly; they ask this policy.
package authz

import "github.com/simplete/storefront/internal/domain"

// Section is an admin console area.
type Section string

const (
	SectionProducts Section = "products"
	SectionOrders   Section = "orders"
	SectionUsers    Section = "users"
	SectionReports  Section = "reports"
)

// Action is a mutating operation gated separately from section access.
type Action string

const (
	ActionCreateProduct     Action = "create-product"
	ActionApplyDiscount     Action = "apply-discount"
	ActionRemoveDiscount    Action = "remove-discount"
	ActionChangeOrderStatus Action = "change-order-status"
	ActionDeleteUser        Action = "delete-user"
)

// Policy evaluates the fixed storefront access rules:
//   - Admin: all sections, all actions.
//   - AdvancedUser: read access to orders and reports, read/create
//     access to products. No discounts, no user management, no order
//     status changes.
//   - Anything else (including logged out): nothing.
type Policy struct{}

// NewPolicy returns the storefront policy.
func NewPolicy() Policy {
	return Policy{}
}

// CanView reports whether the role-set may see the admin section.
func (Policy) CanView(roles domain.RoleSet, section Section) bool {
	if roles.Has(domain.RoleAdmin) {
		return true
	}
	if roles.Has(domain.RoleAdvancedUser) {
		switch section {
		case SectionProducts, SectionOrders, SectionReports:
			return true
		}
	}
	return false
}

// Can reports whether the role-set may perform the action.
func (Policy) Can(roles domain.RoleSet, action Action) bool {
	if roles.Has(domain.RoleAdmin) {
		return true
	}
	if roles.Has(domain.RoleAdvancedUser) {
		return action == ActionCreateProduct
	}
	return false
}
