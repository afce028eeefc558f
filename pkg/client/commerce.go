package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/naveenspark/backoffice/pkg/domain"
)

// OfferInput is the create/update payload for a promo code.
type OfferInput struct {
	Code          string     `json:"code"`
	Description   string     `json:"description,omitempty"`
	DiscountType  string     `json:"discountType"`
	DiscountValue float64    `json:"discountValue"`
	MinOrder      float64    `json:"minOrderAmount,omitempty"`
	MaxUses       int        `json:"maxUses,omitempty"`
	StartsAt      *time.Time `json:"startsAt,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	IsActive      bool       `json:"isActive"`
}

// TaxInput is the create/update payload for a tax rate.
type TaxInput struct {
	Name      string  `json:"name"`
	Rate      float64 `json:"rate"`
	IsActive  bool    `json:"isActive"`
	IsDefault bool    `json:"isDefault"`
}

// PackagingTypeInput is the create/update payload for a packaging type.
type PackagingTypeInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// CompanyInput is the create/update payload for a company.
type CompanyInput struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxNumber string `json:"taxNumber,omitempty"`
	Address   string `json:"address,omitempty"`
	IsActive  bool   `json:"isActive"`
}

// ApproveWithdrawal approves a pending payout.
func (c *Client) ApproveWithdrawal(ctx context.Context, id string) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	if err := c.patch(ctx, "/withdrawals/"+url.PathEscape(id)+"/approve", nil, &w); err != nil {
		return nil, fmt.Errorf("client.ApproveWithdrawal: %w", err)
	}
	return &w, nil
}

// RejectWithdrawal rejects a pending payout with a reason shown to the requester.
func (c *Client) RejectWithdrawal(ctx context.Context, id, reason string) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	if err := c.patch(ctx, "/withdrawals/"+url.PathEscape(id)+"/reject", map[string]string{"reason": reason}, &w); err != nil {
		return nil, fmt.Errorf("client.RejectWithdrawal: %w", err)
	}
	return &w, nil
}
