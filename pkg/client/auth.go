package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/naveenspark/backoffice/pkg/domain"
)

// Login authenticates an admin and stores the issued session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	var res domain.LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, loginPath, body, &res); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	if res.AccessToken == "" {
		return nil, errors.New("client.Login: response has no access token")
	}
	if err := c.tokens.SetTokens(res.TokenPair); err != nil {
		return nil, fmt.Errorf("client.Login: store tokens: %w", err)
	}
	if ps, ok := c.tokens.(ProfileStore); ok && res.Admin != nil {
		if err := ps.SetAdmin(res.Admin); err != nil {
			return nil, fmt.Errorf("client.Login: store profile: %w", err)
		}
	}
	c.log.Info().Str("email", email).Msg("logged in")
	return &res, nil
}

// Logout tells the server to revoke the refresh token, then clears the local
// session whether or not the server call succeeded.
func (c *Client) Logout(ctx context.Context) error {
	pair, err := c.tokens.Tokens()
	if err == nil && pair.RefreshToken != "" {
		// No refresh-and-retry here: an expired session is being discarded anyway.
		if _, err := c.send(ctx, http.MethodPost, logoutPath, map[string]string{"refreshToken": pair.RefreshToken}, nil); err != nil {
			c.log.Debug().Err(err).Msg("server logout failed")
		}
	}
	if err := c.tokens.Clear(); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// Me returns the admin profile stored at login.
func (c *Client) Me() (*domain.Admin, error) {
	ps, ok := c.tokens.(ProfileStore)
	if !ok {
		return nil, errors.New("client.Me: token store does not keep a profile")
	}
	admin, err := ps.Admin()
	if err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	if admin == nil {
		return nil, fmt.Errorf("client.Me: %w", ErrSessionExpired)
	}
	return admin, nil
}

// LoggedIn reports whether an access token is stored.
func (c *Client) LoggedIn() bool {
	return c.accessToken() != ""
}
