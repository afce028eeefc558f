package domain

import "time"

// Region groups cities for delivery coverage.
type Region struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	IsActive bool   `json:"isActive"`
}

// City is a delivery destination inside a region.
type City struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	RegionID    string  `json:"regionId"`
	Region      *Region `json:"region,omitempty"`
	DeliveryFee float64 `json:"deliveryFee"`
	IsActive    bool    `json:"isActive"`
}

// DeliveryPartner is a courier company that fulfils deliveries.
type DeliveryPartner struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	CityIDs      []string  `json:"cityIds,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Commission   float64   `json:"commission"`
	ContactName  string    `json:"contactName,omitempty"`
	TrackingURL  string    `json:"trackingUrl,omitempty"`
	ActiveOrders int       `json:"activeOrders"`
}

// Delivery record statuses.
const (
	DeliveryPending   = "pending"
	DeliveryAssigned  = "assigned"
	DeliveryInTransit = "in_transit"
	DeliveryDelivered = "delivered"
	DeliveryFailed    = "failed"
	DeliveryCancelled = "cancelled"
)

// DeliveryStatuses is the cycle order used by status pickers.
var DeliveryStatuses = []string{
	DeliveryPending,
	DeliveryAssigned,
	DeliveryInTransit,
	DeliveryDelivered,
	DeliveryFailed,
	DeliveryCancelled,
}

// DeliveryRecord tracks one occasion's delivery through a partner.
type DeliveryRecord struct {
	ID          string           `json:"id"`
	OccasionID  string           `json:"occasionId"`
	PartnerID   string           `json:"partnerId"`
	Partner     *DeliveryPartner `json:"partner,omitempty"`
	CityID      string           `json:"cityId,omitempty"`
	Status      string           `json:"status"`
	TrackingNo  string           `json:"trackingNumber,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	ScheduledAt *time.Time       `json:"scheduledAt,omitempty"`
	DeliveredAt *time.Time       `json:"deliveredAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ValidDeliveryStatus returns true if s is a known delivery status.
func ValidDeliveryStatus(s string) bool {
	for _, v := range DeliveryStatuses {
		if v == s {
			return true
		}
	}
	return false
}
