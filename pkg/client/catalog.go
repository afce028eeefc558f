package client

import (
	"context"
	"fmt"
	"net/url"
)

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"salePrice,omitempty"`
	Stock       int      `json:"stock"`
	SKU         string   `json:"sku,omitempty"`
	BrandID     string   `json:"brandId,omitempty"`
	CategoryID  string   `json:"categoryId,omitempty"`
	Images      []string `json:"images,omitempty"`
	IsActive    bool     `json:"isActive"`
}

// BrandInput is the create/update payload for a brand.
type BrandInput struct {
	Name     string `json:"name"`
	Logo     string `json:"logo,omitempty"`
	IsActive bool   `json:"isActive"`
}

// CategoryInput is the create/update payload for a product category.
// A nil ParentID creates a root category.
type CategoryInput struct {
	Name        string  `json:"name"`
	ParentID    *string `json:"parentId"`
	Slug        string  `json:"slug,omitempty"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	SortOrder   int     `json:"sortOrder"`
	IsActive    bool    `json:"isActive"`
}

// SetProductActive toggles whether a product is listed in the storefront.
func (c *Client) SetProductActive(ctx context.Context, id string, active bool) error {
	body := map[string]bool{"isActive": active}
	if err := c.patch(ctx, "/products/"+url.PathEscape(id)+"/status", body, nil); err != nil {
		return fmt.Errorf("client.SetProductActive: %w", err)
	}
	return nil
}
