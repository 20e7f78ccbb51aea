package entity

type SubaccountType string

const (
	SubaccountTypeAdmin  SubaccountType = "admin"
	SubaccountTypeVendor SubaccountType = "vendor"
)

// ChapaSubaccount records a processor-side settlement destination. The admin
// subaccount is a platform-wide singleton enforced by a unique index on the
// type column; vendor subaccount ids live on the vendor row itself.
type ChapaSubaccount struct {
	BaseSimple
	AccountID string         `db:"account_id"`
	Type      SubaccountType `db:"type"`
}
