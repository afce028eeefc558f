package client

import (
	"context"
	"fmt"
	"net/url"
)

// BlockUser prevents a user from signing in.
func (c *Client) BlockUser(ctx context.Context, id string) error {
	if err := c.patch(ctx, "/users/"+url.PathEscape(id)+"/block", nil, nil); err != nil {
		return fmt.Errorf("client.BlockUser: %w", err)
	}
	return nil
}

// UnblockUser restores a blocked user.
func (c *Client) UnblockUser(ctx context.Context, id string) error {
	if err := c.patch(ctx, "/users/"+url.PathEscape(id)+"/unblock", nil, nil); err != nil {
		return fmt.Errorf("client.UnblockUser: %w", err)
	}
	return nil
}
