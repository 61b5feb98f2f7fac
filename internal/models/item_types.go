package models

import "time"

// Item is the model for the 'items' table.
// PriceCents stores the price in integer minor units so values round-trip
// exactly (no float money).
type Item struct {
	ID          int64     `json:"id" db:"id"`
	CategoryID  int64     `json:"categoryId" db:"category_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"` // Use pointer for NULL
	PriceCents  int64     `json:"priceCents" db:"price_cents"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
