package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/naveenspark/backoffice/pkg/domain"
)

// RegionInput is the create/update payload for a region.
type RegionInput struct {
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	IsActive bool   `json:"isActive"`
}

// CityInput is the create/update payload for a city.
type CityInput struct {
	Name        string  `json:"name"`
	RegionID    string  `json:"regionId"`
	DeliveryFee float64 `json:"deliveryFee"`
	IsActive    bool    `json:"isActive"`
}

// DeliveryPartnerInput is the create/update payload for a delivery partner.
type DeliveryPartnerInput struct {
	Name        string   `json:"name"`
	ContactName string   `json:"contactName,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Email       string   `json:"email,omitempty"`
	CityIDs     []string `json:"cityIds,omitempty"`
	Commission  float64  `json:"commission"`
	TrackingURL string   `json:"trackingUrl,omitempty"`
	IsActive    bool     `json:"isActive"`
}

// DeliveryRecordInput is the create/update payload for a delivery record.
type DeliveryRecordInput struct {
	OccasionID  string     `json:"occasionId"`
	PartnerID   string     `json:"partnerId"`
	CityID      string     `json:"cityId,omitempty"`
	Status      string     `json:"status"`
	TrackingNo  string     `json:"trackingNumber,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

// UpdateDeliveryStatus moves a delivery record to a new status.
func (c *Client) UpdateDeliveryStatus(ctx context.Context, id, status, notes string) (*domain.DeliveryRecord, error) {
	if !domain.ValidDeliveryStatus(status) {
		return nil, fmt.Errorf("client.UpdateDeliveryStatus: unknown status %q", status)
	}
	body := map[string]string{"status": status}
	if notes != "" {
		body["notes"] = notes
	}
	var rec domain.DeliveryRecord
	if err := c.patch(ctx, "/delivery-records/"+url.PathEscape(id)+"/status", body, &rec); err != nil {
		return nil, fmt.Errorf("client.UpdateDeliveryStatus: %w", err)
	}
	return &rec, nil
}
