package domain

import "time"

// Payment is a customer payment. Payments are read-only in the back office.
type Payment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	OccasionID string    `json:"occasionId,omitempty"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Method     string    `json:"method"`
	Status     string    `json:"status"` // "pending", "succeeded", "failed", "refunded"
	Reference  string    `json:"reference,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Discount types for offers.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Offer is a promo code.
type Offer struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	Description   string     `json:"description,omitempty"`
	DiscountType  string     `json:"discountType"`
	DiscountValue float64    `json:"discountValue"`
	MinOrder      float64    `json:"minOrderAmount,omitempty"`
	MaxUses       int        `json:"maxUses,omitempty"`
	UsedCount     int        `json:"usedCount"`
	StartsAt      *time.Time `json:"startsAt,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	IsActive      bool       `json:"isActive"`
}

// ValidDiscountType returns true if t is a known offer discount type.
func ValidDiscountType(t string) bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Withdrawal statuses.
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// Withdrawal is a payout request from a user or company wallet.
type Withdrawal struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	BankName    string     `json:"bankName,omitempty"`
	IBAN        string     `json:"iban,omitempty"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Tax is a tax rate applied at checkout.
type Tax struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Rate      float64 `json:"rate"` // percent
	IsActive  bool    `json:"isActive"`
	IsDefault bool    `json:"isDefault"`
}

// PackagingType is a gift-wrapping option.
type PackagingType struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// Company is a corporate customer account.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	TaxNumber string    `json:"taxNumber,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
