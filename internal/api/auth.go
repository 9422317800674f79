package api

import (
	"context"
	"net/http"

	"github.com/simplete/storefront/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type authResponse struct {
	UserID string   `json:"userId"`
	Token  string   `json:"token"`
	Roles  []string `json:"roles"`
}

// session validates the payload at the boundary instead of letting
// missing fields propagate.
func (r authResponse) session() (domain.Session, error) {
	if r.UserID == "" || r.Token == "" || r.Roles == nil {
		return domain.Session{}, &AuthError{Message: "invalid auth response: missing userId, token, or roles"}
	}
	return domain.Session{
		UserID: r.UserID,
		Token:  r.Token,
		Roles:  r.Roles,
	}, nil
}

// Login exchanges credentials for a session. Rejections and malformed
// responses both come back as *AuthError.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	u := c.base.JoinPath("Auth", "login")

	var out authResponse
	if err := c.send(ctx, http.MethodPost, u, loginRequest{Email: email, Password: password}, false, &out); err != nil {
		return domain.Session{}, &AuthError{Message: "login rejected", Err: err}
	}
	return out.session()
}

// Register creates an account and returns the resulting session.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	u := c.base.JoinPath("Auth", "register")

	body := registerRequest{
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Password:  reg.Password,
	}

	var out authResponse
	if err := c.send(ctx, http.MethodPost, u, body, false, &out); err != nil {
		return domain.Session{}, &AuthError{Message: "registration rejected", Err: err}
	}
	return out.session()
}
