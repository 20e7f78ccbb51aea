package adaptor

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/chapa"
	"wedding-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

// InitiatePayment handles POST /api/payment/initiate
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.InitiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.InitiatePayment(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "initiate payment")
		return
	}

	utils.ResponseCreated(w, "Payment initiated", resp)
}

// VerifyPayment handles POST /api/payment/verify
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.VerifyPayment(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "verify payment")
		return
	}

	utils.ResponseSuccess(w, "Payment verified", resp)
}

// Webhook handles POST /api/payment/webhook. The signature covers the raw
// body, so it must be read before any decoding.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.ResponseBadRequest(w, "Failed to read request body", nil)
		return
	}

	signature := r.Header.Get(chapa.SignatureHeader)

	if err := h.service.HandleWebhook(r.Context(), signature, body); err != nil {
		writeServiceError(w, h.log, err, "webhook")
		return
	}

	utils.ResponseSuccess(w, "Webhook processed", nil)
}

// GetClientPayments handles GET /api/payment
func (h *PaymentHandler) GetClientPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	req := paginatedRequest(r)
	status := r.URL.Query().Get("status")

	resp, err := h.service.GetClientPayments(r.Context(), userID.String(), status, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "get client payments")
		return
	}

	utils.ResponseSuccess(w, "Payments retrieved", resp)
}

// ==================== ADMIN HANDLERS ====================

// ListPayments handles GET /api/admin/payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	req := paginatedRequest(r)
	filter := paymentFilter(r)

	resp, err := h.service.ListPayments(r.Context(), filter, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "list payments")
		return
	}

	utils.ResponseSuccess(w, "Payments retrieved", resp)
}

// RefundPayment handles POST /api/admin/payments/{id}/refund
func (h *PaymentHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")

	resp, err := h.service.RefundPayment(r.Context(), paymentID)
	if err != nil {
		writeServiceError(w, h.log, err, "refund payment")
		return
	}

	utils.ResponseSuccess(w, "Payment refunded", resp)
}

// paymentFilter reads the optional admin listing filters from query params.
func paymentFilter(r *http.Request) repository.PaymentFilter {
	var filter repository.PaymentFilter
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		status := entity.PaymentStatus(v)
		filter.Status = &status
	}
	if v := q.Get("method"); v != "" {
		method := v
		filter.Method = &method
	}
	if v := q.Get("client_id"); v != "" {
		if id, err := utils.ParseUUID(v); err == nil {
			filter.ClientID = &id
		}
	}
	if v := q.Get("vendor_id"); v != "" {
		if id, err := utils.ParseUUID(v); err == nil {
			filter.VendorID = &id
		}
	}
	if v := q.Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.From = &t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.To = &t
		}
	}

	return filter
}
