package repository

import (
	"wedding-marketplace/pkg/database"

	"go.uber.org/zap"
)

// Repository aggregates all data-access interfaces so the service layer
// receives a single dependency.
type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Vendor     VendorRepository
	Service    ServiceRepository
	Booking    BookingRepository
	Payment    PaymentRepository
	Subaccount SubaccountRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Vendor:     NewVendorRepository(db, log),
		Service:    NewServiceRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		Payment:    NewPaymentRepository(db, log),
		Subaccount: NewSubaccountRepository(db, log),
	}
}
