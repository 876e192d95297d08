package api

import (
	"context"
)

// FetchProfile loads the signed-in user's profile.
func (c *Client) FetchProfile(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/user/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the given field changes and returns the updated
// profile as the backend now sees it.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := c.put(ctx, "/user/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, change PasswordChange) error {
	return c.put(ctx, "/user/password", change, nil)
}
