package wire

import (
	"wedding-marketplace/internal/adaptor"
	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/payment/webhook - Processor callbacks. Authenticated by the
	// HMAC signature over the body, not by a session.
	r.Post("/api/payment/webhook", paymentHandler.Webhook)

	// ==================== CLIENT ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.RequireRole(repo.User, log, entity.RoleClient))

		// POST /api/payment/initiate - Start a split checkout for a booking
		r.Post("/api/payment/initiate", paymentHandler.InitiatePayment)

		// POST /api/payment/verify - Reconcile against the processor
		r.Post("/api/payment/verify", paymentHandler.VerifyPayment)

		// GET /api/payment - Own payment history
		r.Get("/api/payment", paymentHandler.GetClientPayments)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/payments", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.RequireRole(repo.User, log, entity.RoleAdmin))

		// GET /api/admin/payments - All payments with filters
		r.Get("/", paymentHandler.ListPayments)

		// POST /api/admin/payments/{id}/refund - Mark a completed payment refunded
		r.Post("/{id}/refund", paymentHandler.RefundPayment)
	})
}
