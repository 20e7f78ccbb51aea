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
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, clientID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetClientBookings(ctx context.Context, clientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// CancelBooking cancels a booking that has not completed. A non-empty
	// requesterID restricts the cancellation to the booking's own client;
	// admin callers pass an empty requesterID.
	CancelBooking(ctx context.Context, bookingID string, requesterID string) error

	// Admin endpoints
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, clientID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	clientUUID, err := utils.ParseUUID(clientID)
	if err != nil {
		return nil, apperr.Validation("invalid client ID format")
	}

	serviceID, err := utils.ParseUUID(req.ServiceID)
	if err != nil {
		return nil, apperr.Validation("invalid service ID format")
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, apperr.Validation("event_date must be in YYYY-MM-DD format")
	}
	if !eventDate.After(time.Now()) {
		return nil, apperr.Validation("event date must be in the future")
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("find service %s: %w", req.ServiceID, err)
	}
	if service == nil || !service.IsActive {
		return nil, apperr.NotFound("service %s not found", req.ServiceID)
	}

	vendor, err := s.repo.Vendor.FindByID(ctx, service.VendorID)
	if err != nil {
		return nil, fmt.Errorf("find vendor for service %s: %w", req.ServiceID, err)
	}
	if vendor == nil || vendor.Status != entity.VendorStatusApproved {
		return nil, apperr.Validation("vendor is not accepting bookings")
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:         utils.GenerateOrderID(),
		ClientID:        clientUUID,
		ServiceID:       serviceID,
		VendorID:        vendor.ID,
		EventDate:       eventDate,
		Location:        req.Location,
		Attendees:       req.Attendees,
		SpecialRequests: req.SpecialRequests,
		Status:          entity.BookingStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("client_id", clientID),
			zap.String("service_id", req.ServiceID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("client_id", clientID),
		zap.String("service_id", req.ServiceID),
		zap.String("event_date", req.EventDate),
	)

	resp := response.BookingToResponse(booking)
	resp.ServiceName = service.Name
	resp.BusinessName = vendor.BusinessName
	return &resp, nil
}

func (s *bookingService) GetClientBookings(ctx context.Context, clientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	clientUUID, err := utils.ParseUUID(clientID)
	if err != nil {
		return nil, apperr.Validation("invalid client ID format")
	}

	bookings, err := s.repo.Booking.FindByClientID(ctx, clientUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get client bookings", zap.Error(err), zap.String("client_id", clientID))
		return nil, fmt.Errorf("get client bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByClientID(ctx, clientUUID)
	if err != nil {
		s.log.Error("Failed to count client bookings", zap.Error(err))
		return nil, fmt.Errorf("count client bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)

		service, _ := s.repo.Service.FindByID(ctx, booking.ServiceID)
		if service != nil {
			bookingResponses[i].ServiceName = service.Name
		}
		vendor, _ := s.repo.Vendor.FindByID(ctx, booking.VendorID)
		if vendor != nil {
			bookingResponses[i].BusinessName = vendor.BusinessName
		}
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, requesterID string) error {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return apperr.Validation("invalid booking ID format")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return apperr.NotFound("booking %s not found", bookingID)
	}

	if requesterID != "" {
		requesterUUID, err := utils.ParseUUID(requesterID)
		if err != nil {
			return apperr.Validation("invalid client ID format")
		}
		if booking.ClientID != requesterUUID {
			return apperr.Authorization("booking does not belong to this client")
		}
	}

	if booking.Status != entity.BookingStatusPending && booking.Status != entity.BookingStatusConfirmed {
		return apperr.InvalidTransition("booking status is %s, cannot cancel", booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
	)

	return nil
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return nil, apperr.Validation("invalid booking ID format")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, apperr.NotFound("booking %s not found", bookingID)
	}

	resp := response.BookingToResponse(booking)

	service, _ := s.repo.Service.FindByID(ctx, booking.ServiceID)
	if service != nil {
		resp.ServiceName = service.Name
	}
	vendor, _ := s.repo.Vendor.FindByID(ctx, booking.VendorID)
	if vendor != nil {
		resp.BusinessName = vendor.BusinessName
	}

	return &resp, nil
}
