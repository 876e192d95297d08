package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/felixgeelhaar/kopi/internal/errors"
)

// Login authenticates a regular user and returns the issued session data.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginData, error) {
	var data LoginData
	if err := c.post(ctx, "/auth/login", creds, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Register creates an account. The backend signs the new user in and
// returns the same payload as Login.
func (c *Client) Register(ctx context.Context, reg Registration) (*LoginData, error) {
	var data LoginData
	if err := c.post(ctx, "/auth/register", reg, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// AdminLogin authenticates against the back-office endpoint.
func (c *Client) AdminLogin(ctx context.Context, creds Credentials) (*LoginData, error) {
	var data LoginData
	if err := c.post(ctx, "/auth/admin/login", creds, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// RefreshToken exchanges a refresh token for a new access token. The
// backend reads the refresh token from the Authorization header; a body
// would be ignored.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	env, err := c.roundTripAs(ctx, http.MethodPost, "/auth/refresh", nil, nil, refreshToken)
	if err != nil {
		return "", err
	}

	var data struct {
		Token string `json:"token"`
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return "", errors.Wrap(errors.ErrCodeAPIResponse, "failed to decode refresh payload", err)
		}
	}
	if data.Token == "" {
		return "", errors.New(errors.ErrCodeAuthRefreshFailed, "refresh returned no token")
	}
	return data.Token, nil
}

// VerifyToken asks the backend whether the current bearer token is valid,
// returning the user it belongs to. This endpoint reports the user at the
// top level of the envelope rather than under data.
func (c *Client) VerifyToken(ctx context.Context) (*User, error) {
	env, err := c.roundTrip(ctx, http.MethodGet, "/auth/verify-token", nil, nil)
	if err != nil {
		return nil, err
	}

	raw := env.User
	if len(raw) == 0 {
		raw = env.Data
	}
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeAPIResponse, "verify-token returned no user")
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIResponse, "failed to decode verified user", err)
	}
	return &user, nil
}
