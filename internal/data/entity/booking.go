package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a scheduled service engagement. It moves from pending to
// confirmed only when a payment for it completes.
type Booking struct {
	Base
	OrderID         string        `db:"order_id"`
	ClientID        uuid.UUID     `db:"client_id"`
	ServiceID       uuid.UUID     `db:"service_id"`
	VendorID        uuid.UUID     `db:"vendor_id"`
	EventDate       time.Time     `db:"event_date"`
	Location        string        `db:"location"`
	Attendees       *int          `db:"attendees"`
	SpecialRequests *string       `db:"special_requests"`
	Status          BookingStatus `db:"status"`
}
