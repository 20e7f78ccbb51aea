package wire

import (
	"wedding-marketplace/internal/adaptor"
	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVendor(
	r chi.Router,
	vendorHandler *adaptor.VendorHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/services - Browse the service catalog
	r.Get("/api/services", vendorHandler.ListServices)

	// ==================== VENDOR ROUTES ====================
	r.Route("/api/vendor", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.RequireRole(repo.User, log, entity.RoleVendor))

		// POST /api/vendor/services - Add a service offering
		r.Post("/services", vendorHandler.AddService)

		// GET /api/vendor/services - Own service offerings
		r.Get("/services", vendorHandler.GetVendorServices)

		// GET /api/vendor/payments - Earnings summary with split details
		r.Get("/payments", vendorHandler.GetVendorEarnings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/vendors", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.RequireRole(repo.User, log, entity.RoleAdmin))

		// PUT /api/admin/vendors/{id}/approve - Approve and provision vendor
		r.Put("/{id}/approve", vendorHandler.ApproveVendor)

		// PUT /api/admin/vendors/{id}/reject - Reject vendor application
		r.Put("/{id}/reject", vendorHandler.RejectVendor)
	})
}
