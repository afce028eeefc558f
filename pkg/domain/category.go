package domain

import "time"

// Category is a product category. A nil or empty ParentID marks a root.
type Category struct {
	ID          string    `json:"id"`
	ParentID    *string   `json:"parentId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsRoot reports whether the category has no parent.
func (c Category) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

// CategoryNode is a Category placed in the tree.
type CategoryNode struct {
	Category
	Level    int             `json:"level"`
	Children []*CategoryNode `json:"children"`
}
