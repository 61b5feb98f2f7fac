package models

import "time"

// Store is the model for the 'stores' table. Each store is one tenant,
// addressed publicly by its unique slug (path or subdomain form).
type Store struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"userId" db:"user_id"`
	Slug   string `json:"slug" db:"slug"`
	Name   string `json:"name" db:"name"`

	// Optional presentation / contact fields (pointers = clean JSON)
	Description *string `json:"description,omitempty" db:"description"`
	Address     *string `json:"address,omitempty" db:"address"`

	Whatsapp     string `json:"whatsapp" db:"whatsapp"`
	PrimaryColor string `json:"primaryColor" db:"primary_color"`
	BusinessType string `json:"businessType" db:"business_type"`

	// Policy flags
	RequiresAddress bool `json:"requiresAddress" db:"requires_address"`
	IsActive        bool `json:"isActive" db:"is_active"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
