package wire

import (
	"wedding-marketplace/internal/adaptor"
	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== CLIENT ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.RequireRole(repo.User, log, entity.RoleClient))

		// POST /api/bookings - Book a vendor service
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings - Own booking history
		r.Get("/api/bookings", bookingHandler.GetClientBookings)

		// PUT /api/bookings/{id}/cancel - Cancel own booking
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.RequireRole(repo.User, log, entity.RoleAdmin))

		// GET /api/admin/bookings/{id} - Inspect any booking
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// PUT /api/admin/bookings/{id}/cancel - Cancel any booking
		r.Put("/{id}/cancel", bookingHandler.AdminCancelBooking)
	})
}
