package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/pkg/chapa"
	"wedding-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errFakeStore = errors.New("fake store error")

// ==================== FAKE REPOSITORIES ====================

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tok, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	session := f.sessions[tok]
	if session == nil || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tok, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	if session := f.sessions[tok]; session != nil {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

type fakeVendorRepo struct {
	mu      sync.Mutex
	vendors map[uuid.UUID]*entity.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[uuid.UUID]*entity.Vendor)}
}

func (f *fakeVendorRepo) Create(ctx context.Context, vendor *entity.Vendor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vendors[vendor.ID] = vendor
	return nil
}

func (f *fakeVendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.vendors[id], nil
}

func (f *fakeVendorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.vendors {
		if v.UserID == userID {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeVendorRepo) UpdateStatus(ctx context.Context, vendorID uuid.UUID, status entity.VendorStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v := f.vendors[vendorID]; v != nil {
		v.Status = status
	}
	return nil
}

func (f *fakeVendorRepo) SetChapaSubaccount(ctx context.Context, vendorID uuid.UUID, subaccountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v := f.vendors[vendorID]; v != nil {
		v.ChapaSubaccountID = &subaccountID
	}
	return nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
}

func (f *fakeServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.services[id], nil
}

func (f *fakeServiceRepo) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Service
	for _, s := range f.services {
		if s.VendorID == vendorID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeServiceRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Service
	for _, s := range f.services {
		if s.IsActive {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeServiceRepo) CountActive(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, s := range f.services {
		if s.IsActive {
			count++
		}
	}
	return count, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking

	confirmErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Booking
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b := f.bookings[bookingID]; b != nil {
		b.Status = status
	}
	return nil
}

func (f *fakeBookingRepo) ConfirmIfPending(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmErr != nil {
		return false, f.confirmErr
	}
	b := f.bookings[bookingID]
	if b == nil || b.Status != entity.BookingStatusPending {
		return false, nil
	}
	b.Status = entity.BookingStatusConfirmed
	return true, nil
}

type fakePaymentRepo struct {
	mu        sync.Mutex
	payments  map[uuid.UUID]*entity.Payment
	attachErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *payment
	f.payments[payment.ID] = &clone
	return nil
}

func (f *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p := f.payments[id]; p != nil {
		clone := *p
		return &clone, nil
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindByTransactionRef(ctx context.Context, ref string) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payments {
		if p.TransactionRef != nil && *p.TransactionRef == ref {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) List(ctx context.Context, filter repository.PaymentFilter, limit, offset int) ([]*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Payment
	for _, p := range f.payments {
		if filter.ClientID != nil && p.ClientID != *filter.ClientID {
			continue
		}
		if filter.VendorID != nil && p.VendorID != *filter.VendorID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.Method != nil && p.Method != *filter.Method {
			continue
		}
		if filter.From != nil && p.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && p.CreatedAt.After(*filter.To) {
			continue
		}
		clone := *p
		result = append(result, &clone)
	}
	return result, nil
}

func (f *fakePaymentRepo) Count(ctx context.Context, filter repository.PaymentFilter) (int64, error) {
	payments, _ := f.List(ctx, filter, 0, 0)
	return int64(len(payments)), nil
}

func (f *fakePaymentRepo) AttachTransactionRef(ctx context.Context, paymentID uuid.UUID, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attachErr != nil {
		return f.attachErr
	}
	if p := f.payments[paymentID]; p != nil {
		p.TransactionRef = &ref
	}
	return nil
}

func (f *fakePaymentRepo) TransitionStatus(ctx context.Context, paymentID uuid.UUID, from, to entity.PaymentStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.payments[paymentID]
	if p == nil || p.Status != from {
		return false, nil
	}
	p.Status = to
	return true, nil
}

type fakeSubaccountRepo struct {
	mu          sync.Mutex
	subaccounts map[entity.SubaccountType]*entity.ChapaSubaccount

	// missFirstFind simulates a concurrent instance inserting the row
	// between the existence check and the insert.
	missFirstFind bool
}

func newFakeSubaccountRepo() *fakeSubaccountRepo {
	return &fakeSubaccountRepo{subaccounts: make(map[entity.SubaccountType]*entity.ChapaSubaccount)}
}

func (f *fakeSubaccountRepo) Create(ctx context.Context, subaccount *entity.ChapaSubaccount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.subaccounts[subaccount.Type]; exists {
		return errFakeStore
	}
	f.subaccounts[subaccount.Type] = subaccount
	return nil
}

func (f *fakeSubaccountRepo) FindByType(ctx context.Context, subType entity.SubaccountType) (*entity.ChapaSubaccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missFirstFind {
		f.missFirstFind = false
		return nil, nil
	}
	return f.subaccounts[subType], nil
}

// ==================== FAKE GATEWAY ====================

type fakeGateway struct {
	mu sync.Mutex

	subaccountID  string
	subaccountErr error
	checkoutURL   string
	initializeErr error
	verifyResult  *chapa.VerifyResult
	verifyErr     error
	signatureOK   bool

	createCalls     int
	initializeCalls int
	verifyCalls     int
	lastInitialize  chapa.InitializeRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		subaccountID: "SUB-test",
		checkoutURL:  "https://checkout.chapa.co/pay/abc",
		signatureOK:  true,
	}
}

func (f *fakeGateway) CreateSubaccount(ctx context.Context, req chapa.SubaccountRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.subaccountErr != nil {
		return "", f.subaccountErr
	}
	return f.subaccountID, nil
}

func (f *fakeGateway) InitializeTransaction(ctx context.Context, req chapa.InitializeRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initializeCalls++
	f.lastInitialize = req
	if f.initializeErr != nil {
		return "", f.initializeErr
	}
	return f.checkoutURL, nil
}

func (f *fakeGateway) VerifyTransaction(ctx context.Context, txRef string) (*chapa.VerifyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	if f.verifyResult != nil {
		return f.verifyResult, nil
	}
	return &chapa.VerifyResult{Status: chapa.StatusPending, TxRef: txRef}, nil
}

func (f *fakeGateway) ValidSignature(signature string, body []byte) bool {
	return f.signatureOK
}

// ==================== TEST ENVIRONMENT ====================

type testEnv struct {
	users       *fakeUserRepo
	sessions    *fakeSessionRepo
	vendors     *fakeVendorRepo
	services    *fakeServiceRepo
	bookings    *fakeBookingRepo
	payments    *fakePaymentRepo
	subaccounts *fakeSubaccountRepo
	gateway     *fakeGateway
	repo        *repository.Repository
	config      *utils.Config
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:       newFakeUserRepo(),
		sessions:    newFakeSessionRepo(),
		vendors:     newFakeVendorRepo(),
		services:    newFakeServiceRepo(),
		bookings:    newFakeBookingRepo(),
		payments:    newFakePaymentRepo(),
		subaccounts: newFakeSubaccountRepo(),
		gateway:     newFakeGateway(),
		config: &utils.Config{
			App:     utils.AppConfig{Name: "Wedding Marketplace"},
			Session: utils.SessionConfig{ExpiryHours: 24},
			Chapa: utils.ChapaConfig{
				SecretKey:          "CHASECK_TEST-abc",
				WebhookSecret:      "whsec",
				BaseURL:            "https://api.chapa.co/v1",
				CallbackURL:        "https://example.com/api/payment/webhook",
				ReturnURL:          "https://example.com/payments/return",
				TimeoutSeconds:     10,
				AdminBankCode:      "946",
				AdminAccountNumber: "1000000000",
			},
		},
	}

	env.repo = &repository.Repository{
		User:       env.users,
		Session:    env.sessions,
		Vendor:     env.vendors,
		Service:    env.services,
		Booking:    env.bookings,
		Payment:    env.payments,
		Subaccount: env.subaccounts,
	}

	return env
}

func (e *testEnv) paymentService() PaymentService {
	return NewPaymentService(e.repo, e.gateway, e.config, zap.NewNop())
}

func (e *testEnv) vendorService() VendorService {
	return NewVendorService(e.repo, e.gateway, zap.NewNop())
}

func (e *testEnv) bookingService() BookingService {
	return NewBookingService(e.repo, zap.NewNop())
}

func (e *testEnv) authService() AuthService {
	return NewAuthService(e.repo, e.config, zap.NewNop())
}

// ==================== SEED HELPERS ====================

func (e *testEnv) seedClient() *entity.User {
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		FirstName:    "Abebe",
		LastName:     "Kebede",
		Email:        "abebe@example.com",
		PasswordHash: "x",
		Role:         entity.RoleClient,
		IsActive:     true,
	}
	e.users.users[user.ID] = user
	return user
}

func (e *testEnv) seedVendor(status entity.VendorStatus, subaccountID string) *entity.Vendor {
	now := time.Now()
	owner := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		FirstName:    "Sara",
		LastName:     "Tesfaye",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         entity.RoleVendor,
		IsActive:     true,
	}
	e.users.users[owner.ID] = owner

	vendor := &entity.Vendor{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:        owner.ID,
		BusinessName:  "Addis Catering",
		AccountNumber: "1000123456789",
		Status:        status,
	}
	if subaccountID != "" {
		vendor.ChapaSubaccountID = &subaccountID
	}
	e.vendors.vendors[vendor.ID] = vendor
	return vendor
}

func (e *testEnv) seedService(vendorID uuid.UUID, price float64) *entity.Service {
	now := time.Now()
	service := &entity.Service{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		VendorID:  vendorID,
		Name:      "Full Catering",
		Category:  "catering",
		BasePrice: price,
		IsActive:  true,
	}
	e.services.services[service.ID] = service
	return service
}

func (e *testEnv) seedBooking(clientID, serviceID, vendorID uuid.UUID, status entity.BookingStatus) *entity.Booking {
	now := time.Now()
	booking := &entity.Booking{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		OrderID:   "BOOK-20260901-120000-XYZ",
		ClientID:  clientID,
		ServiceID: serviceID,
		VendorID:  vendorID,
		EventDate: now.AddDate(0, 3, 0),
		Location:  "Addis Ababa",
		Status:    status,
	}
	e.bookings.bookings[booking.ID] = booking
	return booking
}

func (e *testEnv) seedAdminSubaccount() *entity.ChapaSubaccount {
	sub := &entity.ChapaSubaccount{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		AccountID:  "SUB-admin",
		Type:       entity.SubaccountTypeAdmin,
	}
	e.subaccounts.subaccounts[entity.SubaccountTypeAdmin] = sub
	return sub
}

func (e *testEnv) seedPayment(booking *entity.Booking, status entity.PaymentStatus, txRef string) *entity.Payment {
	now := time.Now()
	payment := &entity.Payment{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		BookingID:   booking.ID,
		ClientID:    booking.ClientID,
		VendorID:    booking.VendorID,
		Amount:      50000,
		AdminSplit:  5000,
		VendorSplit: 45000,
		Method:      entity.PaymentMethodChapa,
		Status:      status,
	}
	if txRef != "" {
		payment.TransactionRef = &txRef
	}
	e.payments.payments[payment.ID] = payment
	return payment
}
