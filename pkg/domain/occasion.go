package domain

import "time"

// Occasion statuses.
const (
	OccasionPending   = "pending"
	OccasionConfirmed = "confirmed"
	OccasionCompleted = "completed"
	OccasionCancelled = "cancelled"
)

// OccasionStatuses is the cycle order used by status pickers.
var OccasionStatuses = []string{OccasionPending, OccasionConfirmed, OccasionCompleted, OccasionCancelled}

// Occasion is a customer's gifting event (birthday, wedding, ...).
type Occasion struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	TypeID    string        `json:"occasionTypeId"`
	Type      *OccasionType `json:"occasionType,omitempty"`
	Title     string        `json:"title"`
	Date      time.Time     `json:"date"`
	Status    string        `json:"status"`
	Total     float64       `json:"totalAmount"`
	CityID    string        `json:"cityId,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// OccasionType is a category of occasion shown to customers.
type OccasionType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
}

// ValidOccasionStatus returns true if s is a known occasion status.
func ValidOccasionStatus(s string) bool {
	for _, v := range OccasionStatuses {
		if v == s {
			return true
		}
	}
	return false
}
