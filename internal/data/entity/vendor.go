package entity

import (
	"github.com/google/uuid"
)

type VendorStatus string

const (
	VendorStatusPending  VendorStatus = "pending"
	VendorStatusApproved VendorStatus = "approved"
	VendorStatusRejected VendorStatus = "rejected"
)

// Vendor is a marketplace seller. AccountNumber is the settlement bank
// account registered with the payment processor; ChapaSubaccountID is set
// once the processor-side subaccount has been provisioned.
type Vendor struct {
	Base
	UserID            uuid.UUID    `db:"user_id"`
	BusinessName      string       `db:"business_name"`
	AccountNumber     string       `db:"account_number"`
	Status            VendorStatus `db:"status"`
	ChapaSubaccountID *string      `db:"chapa_subaccount_id"`
}

// Provisioned reports whether the vendor can receive split settlements.
func (v *Vendor) Provisioned() bool {
	return v.ChapaSubaccountID != nil && *v.ChapaSubaccountID != ""
}
