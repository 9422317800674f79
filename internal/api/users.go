package api

import (
	"context"
	"net/http"

	"github.com/simplete/storefront/internal/domain"
)

type userDTO struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Users lists all accounts. Admin-facing.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	u := c.base.JoinPath("user")

	var out []userDTO
	if err := c.send(ctx, http.MethodGet, u, nil, true, &out); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(out))
	for _, d := range out {
		users = append(users, domain.User{
			ID:        d.ID,
			UserName:  d.UserName,
			FirstName: d.FirstName,
			LastName:  d.LastName,
		})
	}
	return users, nil
}

// DeleteUser removes an account by id. Admin-facing.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	u := c.base.JoinPath("user", userID)
	return c.send(ctx, http.MethodDelete, u, nil, true, nil)
}
