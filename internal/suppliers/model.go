package suppliers

import (
	"time"
)

// Supplier is a produce supplier that orders are sent to.
type Supplier struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Input carries the mutable supplier fields for create and update.
type Input struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Notes string `json:"notes"`
}
