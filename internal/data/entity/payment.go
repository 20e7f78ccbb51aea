package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentMethodChapa is the only collection method; payments always go
// through the hosted checkout of the external processor.
const PaymentMethodChapa = "chapa"

// Payment is one attempt to collect funds for a booking. AdminSplit and
// VendorSplit always sum to Amount. TransactionRef stays nil until the
// checkout session has been created with the processor.
type Payment struct {
	Base
	BookingID      uuid.UUID     `db:"booking_id"`
	ClientID       uuid.UUID     `db:"client_id"`
	VendorID       uuid.UUID     `db:"vendor_id"`
	RecipientID    uuid.UUID     `db:"recipient_id"`
	Amount         float64       `db:"amount"`
	AdminSplit     float64       `db:"admin_split"`
	VendorSplit    float64       `db:"vendor_split"`
	Method         string        `db:"method"`
	Status         PaymentStatus `db:"status"`
	TransactionRef *string       `db:"transaction_ref"`
}

// Terminal reports whether the status permits no further ordinary
// transitions. Refunds go through their own explicit path.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed || s == PaymentStatusRefunded
}
