package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/dto/response"
	"wedding-marketplace/pkg/apperr"
	"wedding-marketplace/pkg/chapa"
	"wedding-marketplace/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentGateway is the slice of the processor client the services need.
// *chapa.Client satisfies it.
type PaymentGateway interface {
	CreateSubaccount(ctx context.Context, req chapa.SubaccountRequest) (string, error)
	InitializeTransaction(ctx context.Context, req chapa.InitializeRequest) (string, error)
	VerifyTransaction(ctx context.Context, txRef string) (*chapa.VerifyResult, error)
	ValidSignature(signature string, body []byte) bool
}

type PaymentService interface {
	// EnsureAdminSubaccount provisions the platform's own settlement
	// subaccount if it does not exist yet. Called once at startup; payments
	// cannot be split without it.
	EnsureAdminSubaccount(ctx context.Context) error

	InitiatePayment(ctx context.Context, clientID string, req *request.InitiatePaymentRequest) (*response.InitiatePaymentResponse, error)
	VerifyPayment(ctx context.Context, clientID string, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error)
	HandleWebhook(ctx context.Context, signature string, body []byte) error
	GetClientPayments(ctx context.Context, clientID string, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error)

	// Admin endpoints
	ListPayments(ctx context.Context, filter repository.PaymentFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error)
	RefundPayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error)
}

type paymentService struct {
	repo    *repository.Repository
	gateway PaymentGateway
	config  *utils.Config
	log     *zap.Logger
}

func NewPaymentService(
	repo *repository.Repository,
	gateway PaymentGateway,
	config *utils.Config,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:    repo,
		gateway: gateway,
		config:  config,
		log:     log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) EnsureAdminSubaccount(ctx context.Context) error {
	existing, err := s.repo.Subaccount.FindByType(ctx, entity.SubaccountTypeAdmin)
	if err != nil {
		return fmt.Errorf("check admin subaccount: %w", err)
	}
	if existing != nil {
		s.log.Info("Admin subaccount already provisioned",
			zap.String("subaccount_id", existing.AccountID))
		return nil
	}

	name := s.config.App.Name
	if name == "" {
		name = "Wedding Marketplace"
	}

	subaccountID, err := s.gateway.CreateSubaccount(ctx, chapa.SubaccountRequest{
		BusinessName:  name,
		AccountName:   name,
		BankCode:      s.config.Chapa.AdminBankCode,
		AccountNumber: s.config.Chapa.AdminAccountNumber,
		SplitType:     chapa.SplitTypePercentage,
		SplitValue:    chapa.AdminSplitValue,
	})
	if err != nil {
		return apperr.External(err, "failed to provision platform subaccount")
	}

	subaccount := &entity.ChapaSubaccount{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		AccountID: subaccountID,
		Type:      entity.SubaccountTypeAdmin,
	}

	if err := s.repo.Subaccount.Create(ctx, subaccount); err != nil {
		// A concurrent instance may have won the race; the unique index on
		// type guarantees exactly one row either way.
		if existing, findErr := s.repo.Subaccount.FindByType(ctx, entity.SubaccountTypeAdmin); findErr == nil && existing != nil {
			s.log.Info("Admin subaccount provisioned concurrently",
				zap.String("subaccount_id", existing.AccountID))
			return nil
		}
		return fmt.Errorf("save admin subaccount: %w", err)
	}

	s.log.Info("Admin subaccount provisioned",
		zap.String("subaccount_id", subaccountID))

	return nil
}

func (s *paymentService) InitiatePayment(ctx context.Context, clientID string, req *request.InitiatePaymentRequest) (*response.InitiatePaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Initiate payment validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	clientUUID, err := utils.ParseUUID(clientID)
	if err != nil {
		return nil, apperr.Validation("invalid client ID format")
	}

	bookingID, err := utils.ParseUUID(req.BookingID)
	if err != nil {
		return nil, apperr.Validation("invalid booking ID format")
	}

	vendorID, err := utils.ParseUUID(req.VendorID)
	if err != nil {
		return nil, apperr.Validation("invalid vendor ID format")
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", req.BookingID, err)
	}
	if booking == nil {
		return nil, apperr.NotFound("booking %s not found", req.BookingID)
	}

	if booking.ClientID != clientUUID {
		return nil, apperr.Authorization("booking does not belong to this client")
	}

	if booking.VendorID != vendorID {
		return nil, apperr.Authorization("booking does not belong to this vendor")
	}

	if booking.Status != entity.BookingStatusPending {
		return nil, apperr.InvalidTransition("booking status is %s, payment can only be initiated for pending bookings", booking.Status)
	}

	service, err := s.repo.Service.FindByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("find service for booking %s: %w", req.BookingID, err)
	}
	if service == nil {
		return nil, apperr.NotFound("service for booking %s not found", req.BookingID)
	}

	vendor, err := s.repo.Vendor.FindByID(ctx, booking.VendorID)
	if err != nil {
		return nil, fmt.Errorf("find vendor for booking %s: %w", req.BookingID, err)
	}
	if vendor == nil {
		return nil, apperr.NotFound("vendor for booking %s not found", req.BookingID)
	}
	if vendor.Status != entity.VendorStatusApproved {
		return nil, apperr.InvalidTransition("vendor is not ready to receive payments")
	}
	// An approved vendor without a subaccount is an operator problem,
	// not a client one.
	if !vendor.Provisioned() {
		return nil, apperr.Configuration("vendor subaccount is not provisioned")
	}

	adminSub, err := s.repo.Subaccount.FindByType(ctx, entity.SubaccountTypeAdmin)
	if err != nil {
		return nil, fmt.Errorf("find admin subaccount: %w", err)
	}
	if adminSub == nil {
		return nil, apperr.Configuration("platform subaccount is not provisioned")
	}

	client, err := s.repo.User.FindByID(ctx, clientUUID)
	if err != nil {
		return nil, fmt.Errorf("find client %s: %w", clientID, err)
	}
	if client == nil {
		return nil, apperr.NotFound("client %s not found", clientID)
	}

	adminShare, vendorShare := splitAmount(req.Amount)

	now := time.Now()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:   booking.ID,
		ClientID:    clientUUID,
		VendorID:    vendor.ID,
		RecipientID: vendor.UserID,
		Amount:      req.Amount,
		AdminSplit:  adminShare,
		VendorSplit: vendorShare,
		Method:      entity.PaymentMethodChapa,
		Status:      entity.PaymentStatusPending,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		return nil, fmt.Errorf("create payment: %w", err)
	}

	txRef := utils.GenerateTxRef(payment.ID)
	if err := s.repo.Payment.AttachTransactionRef(ctx, payment.ID, txRef); err != nil {
		// No checkout session exists without a ref; close out the attempt.
		if _, failErr := s.repo.Payment.TransitionStatus(ctx, payment.ID, entity.PaymentStatusPending, entity.PaymentStatusFailed); failErr != nil {
			s.log.Error("Failed to mark payment failed after ref attach error",
				zap.Error(failErr),
				zap.String("payment_id", payment.ID.String()),
			)
		}
		return nil, fmt.Errorf("attach transaction ref: %w", err)
	}
	payment.TransactionRef = &txRef

	checkoutURL, err := s.gateway.InitializeTransaction(ctx, chapa.InitializeRequest{
		Amount:      strconv.FormatFloat(payment.Amount, 'f', 2, 64),
		Currency:    chapa.CurrencyETB,
		Email:       client.Email,
		FirstName:   client.FirstName,
		LastName:    client.LastName,
		TxRef:       txRef,
		CallbackURL: s.config.Chapa.CallbackURL,
		ReturnURL:   s.config.Chapa.ReturnURL,
		Subaccounts: []chapa.SplitSubaccount{
			{
				ID:         *vendor.ChapaSubaccountID,
				SplitType:  chapa.SplitTypePercentage,
				SplitValue: chapa.VendorSplitValue,
			},
			{
				ID:         adminSub.AccountID,
				SplitType:  chapa.SplitTypePercentage,
				SplitValue: chapa.AdminSplitValue,
			},
		},
		Custom: &chapa.Customization{
			Title:       "Wedding Booking",
			Description: service.Name,
		},
	})
	if err != nil {
		// The checkout session never came to exist, so this attempt is dead.
		// Mark it failed; the client can initiate a fresh payment.
		if _, failErr := s.repo.Payment.TransitionStatus(ctx, payment.ID, entity.PaymentStatusPending, entity.PaymentStatusFailed); failErr != nil {
			s.log.Error("Failed to mark payment failed after checkout error",
				zap.Error(failErr),
				zap.String("payment_id", payment.ID.String()),
			)
		}
		s.log.Error("Checkout initialization failed",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
			zap.String("tx_ref", txRef),
		)
		return nil, apperr.External(err, "payment provider is unavailable")
	}

	s.log.Info("Payment initiated",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.String("tx_ref", txRef),
		zap.Float64("amount", payment.Amount),
		zap.Float64("admin_split", adminShare),
		zap.Float64("vendor_split", vendorShare),
	)

	return &response.InitiatePaymentResponse{
		Payment:     response.PaymentToResponse(payment),
		CheckoutURL: checkoutURL,
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, clientID string, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	clientUUID, err := utils.ParseUUID(clientID)
	if err != nil {
		return nil, apperr.Validation("invalid client ID format")
	}

	payment, err := s.repo.Payment.FindByTransactionRef(ctx, req.TransactionRef)
	if err != nil {
		return nil, fmt.Errorf("find payment by ref %s: %w", req.TransactionRef, err)
	}
	if payment == nil {
		return nil, apperr.NotFound("payment with reference %s not found", req.TransactionRef)
	}

	if payment.ClientID != clientUUID {
		return nil, apperr.Authorization("payment does not belong to this client")
	}

	result, err := s.gateway.VerifyTransaction(ctx, req.TransactionRef)
	if err != nil {
		return nil, apperr.External(err, "payment provider is unavailable")
	}

	target := mapProcessorStatus(result.Status)
	if target != entity.PaymentStatusPending {
		if err := s.settle(ctx, payment, target); err != nil {
			return nil, err
		}
	}

	current, err := s.repo.Payment.FindByID(ctx, payment.ID)
	if err != nil || current == nil {
		return nil, fmt.Errorf("reload payment %s: %w", payment.ID, err)
	}

	return &response.VerifyPaymentResponse{
		Payment:         response.PaymentToResponse(current),
		ProcessorStatus: result.Status,
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, signature string, body []byte) error {
	if !s.gateway.ValidSignature(signature, body) {
		s.log.Warn("Webhook rejected, invalid signature")
		return apperr.Authentication("invalid webhook signature")
	}

	event, err := chapa.ParseWebhookEvent(body)
	if err != nil {
		return apperr.Validation("malformed webhook payload")
	}

	ref := event.Reference()
	if ref == "" {
		return apperr.Validation("webhook payload carries no transaction reference")
	}

	payment, err := s.repo.Payment.FindByTransactionRef(ctx, ref)
	if err != nil {
		return fmt.Errorf("find payment by ref %s: %w", ref, err)
	}
	if payment == nil {
		s.log.Warn("Webhook for unknown transaction",
			zap.String("tx_ref", ref),
			zap.String("status", event.Status),
		)
		return apperr.NotFound("payment with reference %s not found", ref)
	}

	target := mapProcessorStatus(event.Status)
	if target == entity.PaymentStatusPending {
		// Nothing to settle yet; the processor will call again.
		return nil
	}

	if err := s.settle(ctx, payment, target); err != nil {
		return err
	}

	s.log.Info("Webhook processed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("tx_ref", ref),
		zap.String("status", string(target)),
	)

	return nil
}

func (s *paymentService) GetClientPayments(ctx context.Context, clientID string, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	clientUUID, err := utils.ParseUUID(clientID)
	if err != nil {
		return nil, apperr.Validation("invalid client ID format")
	}

	filter := repository.PaymentFilter{ClientID: &clientUUID}
	if status != "" {
		paymentStatus := entity.PaymentStatus(status)
		filter.Status = &paymentStatus
	}
	return s.listPayments(ctx, filter, req)
}

func (s *paymentService) ListPayments(ctx context.Context, filter repository.PaymentFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	return s.listPayments(ctx, filter, req)
}

func (s *paymentService) RefundPayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error) {
	id, err := utils.ParseUUID(paymentID)
	if err != nil {
		return nil, apperr.Validation("invalid payment ID format")
	}

	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find payment %s: %w", paymentID, err)
	}
	if payment == nil {
		return nil, apperr.NotFound("payment %s not found", paymentID)
	}

	claimed, err := s.repo.Payment.TransitionStatus(ctx, id, entity.PaymentStatusCompleted, entity.PaymentStatusRefunded)
	if err != nil {
		return nil, fmt.Errorf("refund payment %s: %w", paymentID, err)
	}
	if !claimed {
		return nil, apperr.InvalidTransition("payment status is %s, only completed payments can be refunded", payment.Status)
	}

	s.log.Info("Payment refunded",
		zap.String("payment_id", paymentID),
		zap.Float64("amount", payment.Amount),
	)

	payment.Status = entity.PaymentStatusRefunded
	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

// settle moves a pending payment to its terminal status and, on completion,
// confirms the booking. Safe to call more than once for the same outcome:
// only one caller claims the transition, the rest see a benign duplicate.
func (s *paymentService) settle(ctx context.Context, payment *entity.Payment, target entity.PaymentStatus) error {
	claimed, err := s.repo.Payment.TransitionStatus(ctx, payment.ID, entity.PaymentStatusPending, target)
	if err != nil {
		return fmt.Errorf("transition payment %s to %s: %w", payment.ID, target, err)
	}

	if !claimed {
		current, err := s.repo.Payment.FindByID(ctx, payment.ID)
		if err != nil {
			return fmt.Errorf("reload payment %s: %w", payment.ID, err)
		}
		if current == nil || current.Status != target {
			status := entity.PaymentStatus("unknown")
			if current != nil {
				status = current.Status
			}
			return apperr.InvalidTransition("payment is already %s", status)
		}
		// Duplicate delivery of the same outcome. Fall through so a crash
		// between the payment update and the booking update heals itself.
		s.log.Info("Duplicate settlement ignored",
			zap.String("payment_id", payment.ID.String()),
			zap.String("status", string(target)),
		)
	}

	if target == entity.PaymentStatusCompleted {
		confirmed, err := s.repo.Booking.ConfirmIfPending(ctx, payment.BookingID)
		if err != nil {
			// The payment is settled; losing the booking update must not
			// undo that. The next duplicate delivery retries it.
			s.log.Error("Failed to confirm booking after settlement",
				zap.Error(err),
				zap.String("booking_id", payment.BookingID.String()),
				zap.String("payment_id", payment.ID.String()),
			)
			return nil
		}
		if confirmed {
			s.log.Info("Booking confirmed",
				zap.String("booking_id", payment.BookingID.String()),
				zap.String("payment_id", payment.ID.String()),
			)
		}
	}

	return nil
}

func (s *paymentService) listPayments(ctx context.Context, filter repository.PaymentFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	payments, err := s.repo.Payment.List(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("list payments: %w", err)
	}

	total, err := s.repo.Payment.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count payments", zap.Error(err))
		return nil, fmt.Errorf("count payments: %w", err)
	}

	paymentResponses := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		paymentResponses[i] = response.PaymentToResponse(payment)
	}

	return response.NewPaginatedResponse(paymentResponses, req.Page, req.PerPage, total), nil
}

// mapProcessorStatus folds the processor's status vocabulary into ours.
// Anything unrecognized maps to failed so money state never advances on a
// status we do not understand.
func mapProcessorStatus(status string) entity.PaymentStatus {
	switch status {
	case chapa.StatusSuccess:
		return entity.PaymentStatusCompleted
	case chapa.StatusPending:
		return entity.PaymentStatusPending
	default:
		return entity.PaymentStatusFailed
	}
}

// splitAmount divides an amount 10/90 between platform and vendor. The
// platform share is rounded to cents and the vendor gets the exact
// remainder, so the two always sum to the original amount.
func splitAmount(amount float64) (adminShare, vendorShare float64) {
	total := decimal.NewFromFloat(amount)
	admin := total.Mul(decimal.NewFromFloat(0.1)).Round(2)
	vendor := total.Sub(admin)
	return admin.InexactFloat64(), vendor.InexactFloat64()
}
