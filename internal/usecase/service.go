package usecase

import (
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Vendor  VendorService
	Booking BookingService
	Payment PaymentService
}

func NewService(repo *repository.Repository, gateway PaymentGateway, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Vendor:  NewVendorService(repo, gateway, log),
		Booking: NewBookingService(repo, log),
		Payment: NewPaymentService(repo, gateway, config, log),
	}
}
