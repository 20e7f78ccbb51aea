package response

import (
	"time"

	"wedding-marketplace/internal/data/entity"
)

type PaymentResponse struct {
	ID             string               `json:"id"`
	BookingID      string               `json:"booking_id"`
	ClientID       string               `json:"client_id"`
	VendorID       string               `json:"vendor_id"`
	Amount         float64              `json:"amount"`
	AdminSplit     float64              `json:"admin_split"`
	VendorSplit    float64              `json:"vendor_split"`
	Method         string               `json:"method"`
	Status         entity.PaymentStatus `json:"status"`
	TransactionRef *string              `json:"transaction_ref,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// InitiatePaymentResponse carries the hosted checkout URL the client must
// be redirected to alongside the created payment record.
type InitiatePaymentResponse struct {
	Payment     PaymentResponse `json:"payment"`
	CheckoutURL string          `json:"checkout_url"`
}

type VerifyPaymentResponse struct {
	Payment         PaymentResponse `json:"payment"`
	ProcessorStatus string          `json:"processor_status"`
}

// VendorEarningsResponse summarizes a vendor's share of completed and
// in-flight payments.
type VendorEarningsResponse struct {
	Received float64           `json:"received"`
	Pending  float64           `json:"pending"`
	Payments []PaymentResponse `json:"payments"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             payment.ID.String(),
		BookingID:      payment.BookingID.String(),
		ClientID:       payment.ClientID.String(),
		VendorID:       payment.VendorID.String(),
		Amount:         payment.Amount,
		AdminSplit:     payment.AdminSplit,
		VendorSplit:    payment.VendorSplit,
		Method:         payment.Method,
		Status:         payment.Status,
		TransactionRef: payment.TransactionRef,
		CreatedAt:      payment.CreatedAt,
	}
}
