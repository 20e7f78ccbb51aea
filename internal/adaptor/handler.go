package adaptor

import (
	"net/http"

	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Vendor  *VendorHandler
	Booking *BookingHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Vendor:  NewVendorHandler(service.Vendor, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Payment, log),
	}
}

// paginatedRequest reads page/per_page query params with sane defaults.
// "limit" is accepted as an alias for per_page.
func paginatedRequest(r *http.Request) request.PaginatedRequest {
	q := r.URL.Query()
	perPage := q.Get("per_page")
	if perPage == "" {
		perPage = q.Get("limit")
	}
	return request.PaginatedRequest{
		Page:    utils.ParseInt(q.Get("page"), 1),
		PerPage: utils.ParseInt(perPage, 10),
	}
}
