package request

type CreateBookingRequest struct {
	ServiceID       string  `json:"service_id" validate:"required,uuid4"`
	EventDate       string  `json:"event_date" validate:"required"` // 2006-01-02
	Location        string  `json:"location" validate:"required,min=2,max=200"`
	Attendees       *int    `json:"attendees,omitempty" validate:"omitempty,gt=0"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
}
