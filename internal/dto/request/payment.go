package request

type InitiatePaymentRequest struct {
	BookingID string  `json:"booking_id" validate:"required,uuid4"`
	VendorID  string  `json:"vendor_id" validate:"required,uuid4"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

type VerifyPaymentRequest struct {
	TransactionRef string `json:"transaction_ref" validate:"required"`
}
