package domain

// Role names recognized by the backend.
const (
	RoleAdmin        = "Admin"
	RoleAdvancedUser = "AdvancedUser"
)

// RoleSet is the collection of permission labels attached to an
// authenticated identity.
type RoleSet []string

// Has reports whether the set contains the given role name.
func (r RoleSet) Has(role string) bool {
	for _, v := range r {
		if v == role {
			return true
		}
	}
	return false
}

// Session is an authenticated identity together with its bearer
// credential. Identity and credential are both present or both absent;
// a zero Session means logged out.
type Session struct {
	UserID string  `json:"userId"`
	Token  string  `json:"token"`
	Roles  RoleSet `json:"roles"`
}

// Registration is the payload for creating a new account.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}
