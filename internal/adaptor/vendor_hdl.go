package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VendorHandler struct {
	service usecase.VendorService
	log     *zap.Logger
}

func NewVendorHandler(service usecase.VendorService, log *zap.Logger) *VendorHandler {
	return &VendorHandler{
		service: service,
		log:     log,
	}
}

// AddService handles POST /api/vendor/services
func (h *VendorHandler) AddService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.AddService(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add service")
		return
	}

	utils.ResponseCreated(w, "Service created", resp)
}

// GetVendorServices handles GET /api/vendor/services
func (h *VendorHandler) GetVendorServices(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	resp, err := h.service.GetVendorServices(r.Context(), userID.String())
	if err != nil {
		writeServiceError(w, h.log, err, "get vendor services")
		return
	}

	utils.ResponseSuccess(w, "Services retrieved", resp)
}

// GetVendorEarnings handles GET /api/vendor/payments
func (h *VendorHandler) GetVendorEarnings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var from, to *time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = &t
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = &t
		}
	}

	resp, err := h.service.GetVendorEarnings(r.Context(), userID.String(), from, to)
	if err != nil {
		writeServiceError(w, h.log, err, "get vendor earnings")
		return
	}

	utils.ResponseSuccess(w, "Earnings retrieved", resp)
}

// ListServices handles GET /api/services
func (h *VendorHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	req := paginatedRequest(r)

	resp, err := h.service.ListServices(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "Services retrieved", resp)
}

// ==================== ADMIN HANDLERS ====================

// ApproveVendor handles PUT /api/admin/vendors/{id}/approve
func (h *VendorHandler) ApproveVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "id")

	resp, err := h.service.ApproveVendor(r.Context(), vendorID)
	if err != nil {
		writeServiceError(w, h.log, err, "approve vendor")
		return
	}

	utils.ResponseSuccess(w, "Vendor approved", resp)
}

// RejectVendor handles PUT /api/admin/vendors/{id}/reject
func (h *VendorHandler) RejectVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "id")

	resp, err := h.service.RejectVendor(r.Context(), vendorID)
	if err != nil {
		writeServiceError(w, h.log, err, "reject vendor")
		return
	}

	utils.ResponseSuccess(w, "Vendor rejected", resp)
}
