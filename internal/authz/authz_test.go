package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simplete/storefront/internal/domain"
)

var (
	admin     = domain.RoleSet{domain.RoleAdmin}
	advanced  = domain.RoleSet{domain.RoleAdvancedUser}
	customer  = domain.RoleSet{"Customer"}
	loggedOut domain.RoleSet
)

func TestPolicy_CanView(t *testing.T) {
	p := NewPolicy()
	sections := []Section{SectionProducts, SectionOrders, SectionUsers, SectionReports}

	for _, s := range sections {
		assert.True(t, p.CanView(admin, s), "admin should see %s", s)
		assert.False(t, p.CanView(customer, s), "customer should not see %s", s)
		assert.False(t, p.CanView(loggedOut, s), "logged out should not see %s", s)
	}

	assert.True(t, p.CanView(advanced, SectionProducts))
	assert.True(t, p.CanView(advanced, SectionOrders))
	assert.True(t, p.CanView(advanced, SectionReports))
	assert.False(t, p.CanView(advanced, SectionUsers))
}

func TestPolicy_Can(t *testing.T) {
	p := NewPolicy()
	actions := []Action{
		ActionCreateProduct,
		ActionApplyDiscount,
		ActionRemoveDiscount,
		ActionChangeOrderStatus,
		ActionDeleteUser,
	}

	for _, a := range actions {
		assert.True(t, p.Can(admin, a), "admin should be allowed %s", a)
		assert.False(t, p.Can(loggedOut, a), "logged out should be denied %s", a)
		assert.False(t, p.Can(customer, a), "customer should be denied %s", a)
	}

	assert.True(t, p.Can(advanced, ActionCreateProduct))
	assert.False(t, p.Can(advanced, ActionApplyDiscount))
	assert.False(t, p.Can(advanced, ActionRemoveDiscount))
	assert.False(t, p.Can(advanced, ActionChangeOrderStatus))
	assert.False(t, p.Can(advanced, ActionDeleteUser))
}

func TestPolicy_MultipleRolesUseStrongest(t *testing.T) {
	p := NewPolicy()
	both := domain.RoleSet{domain.RoleAdvancedUser, domain.RoleAdmin}

	assert.True(t, p.CanView(both, SectionUsers))
	assert.True(t, p.Can(both, ActionDeleteUser))
}
