package usecase

import (
	"context"
	"fmt"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/dto/response"
	"wedding-marketplace/pkg/apperr"
	"wedding-marketplace/pkg/chapa"
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type VendorService interface {
	// Vendor endpoints
	AddService(ctx context.Context, userID string, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	GetVendorServices(ctx context.Context, userID string) ([]response.ServiceResponse, error)
	GetVendorEarnings(ctx context.Context, userID string, from, to *time.Time) (*response.VendorEarningsResponse, error)

	// Public
	ListServices(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error)

	// Admin endpoints
	ApproveVendor(ctx context.Context, vendorID string) (*response.VendorResponse, error)
	RejectVendor(ctx context.Context, vendorID string) (*response.VendorResponse, error)
}

type vendorService struct {
	repo    *repository.Repository
	gateway PaymentGateway
	log     *zap.Logger
}

func NewVendorService(
	repo *repository.Repository,
	gateway PaymentGateway,
	log *zap.Logger,
) VendorService {
	return &vendorService{
		repo:    repo,
		gateway: gateway,
		log:     log.With(zap.String("service", "vendor")),
	}
}

// ApproveVendor provisions the vendor's settlement subaccount with the
// processor and only then marks the vendor approved, so an approved vendor
// is always payable. Re-approving an already provisioned vendor is a no-op.
func (s *vendorService) ApproveVendor(ctx context.Context, vendorID string) (*response.VendorResponse, error) {
	id, err := utils.ParseUUID(vendorID)
	if err != nil {
		return nil, apperr.Validation("invalid vendor ID format")
	}

	vendor, err := s.repo.Vendor.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find vendor %s: %w", vendorID, err)
	}
	if vendor == nil {
		return nil, apperr.NotFound("vendor %s not found", vendorID)
	}

	if vendor.Status == entity.VendorStatusApproved && vendor.Provisioned() {
		resp := response.VendorToResponse(vendor)
		return &resp, nil
	}

	if !validSettlementAccount(vendor.AccountNumber) {
		return nil, apperr.Validation("vendor account number must be exactly 13 digits")
	}

	if !vendor.Provisioned() {
		subaccountID, err := s.gateway.CreateSubaccount(ctx, chapa.SubaccountRequest{
			BusinessName:  vendor.BusinessName,
			AccountName:   vendor.BusinessName,
			BankCode:      chapa.BankCodeCBE,
			AccountNumber: vendor.AccountNumber,
			SplitType:     chapa.SplitTypePercentage,
			SplitValue:    chapa.VendorSplitValue,
		})
		if err != nil {
			s.log.Error("Failed to provision vendor subaccount",
				zap.Error(err),
				zap.String("vendor_id", vendorID),
			)
			return nil, apperr.External(err, "failed to provision vendor with payment provider")
		}

		if err := s.repo.Vendor.SetChapaSubaccount(ctx, id, subaccountID); err != nil {
			return nil, fmt.Errorf("save vendor subaccount: %w", err)
		}
		vendor.ChapaSubaccountID = &subaccountID
	}

	if err := s.repo.Vendor.UpdateStatus(ctx, id, entity.VendorStatusApproved); err != nil {
		return nil, fmt.Errorf("approve vendor %s: %w", vendorID, err)
	}
	vendor.Status = entity.VendorStatusApproved

	s.log.Info("Vendor approved",
		zap.String("vendor_id", vendorID),
		zap.String("business_name", vendor.BusinessName),
		zap.String("subaccount_id", *vendor.ChapaSubaccountID),
	)

	resp := response.VendorToResponse(vendor)
	return &resp, nil
}

func (s *vendorService) RejectVendor(ctx context.Context, vendorID string) (*response.VendorResponse, error) {
	id, err := utils.ParseUUID(vendorID)
	if err != nil {
		return nil, apperr.Validation("invalid vendor ID format")
	}

	vendor, err := s.repo.Vendor.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find vendor %s: %w", vendorID, err)
	}
	if vendor == nil {
		return nil, apperr.NotFound("vendor %s not found", vendorID)
	}

	if vendor.Status == entity.VendorStatusRejected {
		resp := response.VendorToResponse(vendor)
		return &resp, nil
	}
	if vendor.Status == entity.VendorStatusApproved {
		return nil, apperr.InvalidTransition("vendor is already approved")
	}

	if err := s.repo.Vendor.UpdateStatus(ctx, id, entity.VendorStatusRejected); err != nil {
		return nil, fmt.Errorf("reject vendor %s: %w", vendorID, err)
	}
	vendor.Status = entity.VendorStatusRejected

	s.log.Info("Vendor rejected",
		zap.String("vendor_id", vendorID),
		zap.String("business_name", vendor.BusinessName),
	)

	resp := response.VendorToResponse(vendor)
	return &resp, nil
}

func (s *vendorService) AddService(ctx context.Context, userID string, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add service validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	vendor, err := s.vendorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if vendor.Status != entity.VendorStatusApproved {
		return nil, apperr.Authorization("vendor is not approved")
	}

	now := time.Now()
	service := &entity.Service{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		VendorID:    vendor.ID,
		Name:        req.Name,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		s.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("vendor_id", vendor.ID.String()),
		)
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.log.Info("Service added",
		zap.String("service_id", service.ID.String()),
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("name", service.Name),
		zap.Float64("base_price", service.BasePrice),
	)

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *vendorService) GetVendorServices(ctx context.Context, userID string) ([]response.ServiceResponse, error) {
	vendor, err := s.vendorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	services, err := s.repo.Service.FindByVendorID(ctx, vendor.ID)
	if err != nil {
		s.log.Error("Failed to get vendor services", zap.Error(err), zap.String("vendor_id", vendor.ID.String()))
		return nil, fmt.Errorf("get vendor services: %w", err)
	}

	serviceResponses := make([]response.ServiceResponse, len(services))
	for i, service := range services {
		serviceResponses[i] = response.ServiceToResponse(service)
	}

	return serviceResponses, nil
}

func (s *vendorService) GetVendorEarnings(ctx context.Context, userID string, from, to *time.Time) (*response.VendorEarningsResponse, error) {
	vendor, err := s.vendorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := repository.PaymentFilter{VendorID: &vendor.ID, From: from, To: to}
	payments, err := s.repo.Payment.List(ctx, filter, 1000, 0)
	if err != nil {
		s.log.Error("Failed to list vendor payments", zap.Error(err), zap.String("vendor_id", vendor.ID.String()))
		return nil, fmt.Errorf("list vendor payments: %w", err)
	}

	resp := &response.VendorEarningsResponse{
		Payments: make([]response.PaymentResponse, len(payments)),
	}
	for i, payment := range payments {
		resp.Payments[i] = response.PaymentToResponse(payment)
		switch payment.Status {
		case entity.PaymentStatusCompleted:
			resp.Received += payment.VendorSplit
		case entity.PaymentStatusPending:
			resp.Pending += payment.VendorSplit
		}
	}

	return resp, nil
}

func (s *vendorService) ListServices(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	services, err := s.repo.Service.ListActive(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}

	total, err := s.repo.Service.CountActive(ctx)
	if err != nil {
		s.log.Error("Failed to count services", zap.Error(err))
		return nil, fmt.Errorf("count services: %w", err)
	}

	serviceResponses := make([]response.ServiceResponse, len(services))
	for i, service := range services {
		serviceResponses[i] = response.ServiceToResponse(service)
	}

	return response.NewPaginatedResponse(serviceResponses, req.Page, req.PerPage, total), nil
}

// ==================== HELPER METHODS ====================

func (s *vendorService) vendorByUserID(ctx context.Context, userID string) (*entity.Vendor, error) {
	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user ID format")
	}

	vendor, err := s.repo.Vendor.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("find vendor for user %s: %w", userID, err)
	}
	if vendor == nil {
		return nil, apperr.NotFound("vendor profile not found")
	}

	return vendor, nil
}

// validSettlementAccount checks the Commercial Bank of Ethiopia account
// format: exactly 13 numeric digits.
func validSettlementAccount(account string) bool {
	if len(account) != 13 {
		return false
	}
	for _, r := range account {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
