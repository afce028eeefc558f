package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/naveenspark/backoffice/pkg/domain"
)

// OccasionTypeInput is the create/update payload for an occasion type.
type OccasionTypeInput struct {
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
}

// UpdateOccasionStatus moves an occasion to a new status.
func (c *Client) UpdateOccasionStatus(ctx context.Context, id, status string) (*domain.Occasion, error) {
	if !domain.ValidOccasionStatus(status) {
		return nil, fmt.Errorf("client.UpdateOccasionStatus: unknown status %q", status)
	}
	var o domain.Occasion
	if err := c.patch(ctx, "/occasions/"+url.PathEscape(id)+"/status", map[string]string{"status": status}, &o); err != nil {
		return nil, fmt.Errorf("client.UpdateOccasionStatus: %w", err)
	}
	return &o, nil
}
