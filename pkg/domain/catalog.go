package domain

import "time"

// Product is a sellable catalog item.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	SalePrice   *float64  `json:"salePrice,omitempty"`
	Stock       int       `json:"stock"`
	SKU         string    `json:"sku,omitempty"`
	BrandID     string    `json:"brandId,omitempty"`
	Brand       *Brand    `json:"brand,omitempty"`
	CategoryID  string    `json:"categoryId,omitempty"`
	Images      []string  `json:"images,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Brand is a product manufacturer or label.
type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
