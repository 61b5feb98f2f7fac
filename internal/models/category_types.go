package models

import "time"

// Category defines the struct for the 'categories' table.
// A category belongs to exactly one store. SortOrder drives the public
// display sequence; ties are broken by name so rendering is deterministic.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	StoreID     int64     `json:"storeId" db:"store_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"` // Use pointer for NULL
	SortOrder   int       `json:"sortOrder" db:"sort_order"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
