package entity

import (
	"github.com/google/uuid"
)

type Service struct {
	Base
	VendorID    uuid.UUID `db:"vendor_id"`
	Name        string    `db:"name"`
	Category    string    `db:"category"`
	BasePrice   float64   `db:"base_price"`
	Description *string   `db:"description"`
	IsActive    bool      `db:"is_active"`
}
