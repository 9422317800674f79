package domain

// User is an account record as listed by the backend's user endpoint.
type User struct {
	ID        string
	UserName  string
	FirstName string
	LastName  string
}
