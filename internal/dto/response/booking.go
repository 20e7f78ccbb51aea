package response

import (
	"time"

	"wedding-marketplace/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	OrderID         string               `json:"order_id"`
	ClientID        string               `json:"client_id"`
	ServiceID       string               `json:"service_id"`
	VendorID        string               `json:"vendor_id"`
	ServiceName     string               `json:"service_name,omitempty"`
	BusinessName    string               `json:"business_name,omitempty"`
	EventDate       string               `json:"event_date"`
	Location        string               `json:"location"`
	Attendees       *int                 `json:"attendees,omitempty"`
	SpecialRequests *string              `json:"special_requests,omitempty"`
	Status          entity.BookingStatus `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              booking.ID.String(),
		OrderID:         booking.OrderID,
		ClientID:        booking.ClientID.String(),
		ServiceID:       booking.ServiceID.String(),
		VendorID:        booking.VendorID.String(),
		EventDate:       booking.EventDate.Format("2006-01-02"),
		Location:        booking.Location,
		Attendees:       booking.Attendees,
		SpecialRequests: booking.SpecialRequests,
		Status:          booking.Status,
		CreatedAt:       booking.CreatedAt,
	}
}
