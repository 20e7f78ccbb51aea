package repository

import (
	"context"
	"fmt"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PaymentFilter narrows payment listings. Nil fields match everything.
type PaymentFilter struct {
	ClientID *uuid.UUID
	VendorID *uuid.UUID
	Status   *entity.PaymentStatus
	Method   *string
	From     *time.Time
	To       *time.Time
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByTransactionRef(ctx context.Context, ref string) (*entity.Payment, error)
	List(ctx context.Context, filter PaymentFilter, limit, offset int) ([]*entity.Payment, error)
	Count(ctx context.Context, filter PaymentFilter) (int64, error)

	// AttachTransactionRef links the processor's checkout session to the
	// payment once the session exists.
	AttachTransactionRef(ctx context.Context, paymentID uuid.UUID, ref string) error

	// TransitionStatus moves a payment from one status to another as a
	// single conditional update and reports whether a row was claimed.
	// Two racing transitions for the same payment cannot both win.
	TransitionStatus(ctx context.Context, paymentID uuid.UUID, from, to entity.PaymentStatus) (bool, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, client_id, vendor_id, recipient_id, amount, admin_split, vendor_split, method, status, transaction_ref, created_at, updated_at`

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, client_id, vendor_id, recipient_id, amount, admin_split, vendor_split, method, status, transaction_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.ClientID,
		payment.VendorID,
		payment.RecipientID,
		payment.Amount,
		payment.AdminSplit,
		payment.VendorSplit,
		payment.Method,
		payment.Status,
		payment.TransactionRef,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("client_id", payment.ClientID.String()),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	return r.scanPayment(r.db.QueryRow(ctx, query, id), id.String())
}

func (r *paymentRepository) FindByTransactionRef(ctx context.Context, ref string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_ref = $1`

	return r.scanPayment(r.db.QueryRow(ctx, query, ref), ref)
}

func (r *paymentRepository) scanPayment(row pgx.Row, key string) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.ClientID,
		&payment.VendorID,
		&payment.RecipientID,
		&payment.Amount,
		&payment.AdminSplit,
		&payment.VendorSplit,
		&payment.Method,
		&payment.Status,
		&payment.TransactionRef,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("find payment %s: %w", key, err)
	}

	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context, filter PaymentFilter, limit, offset int) ([]*entity.Payment, error) {
	where, args := buildPaymentFilter(filter)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT `+paymentColumns+`
		FROM payments
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var payment entity.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.BookingID,
			&payment.ClientID,
			&payment.VendorID,
			&payment.RecipientID,
			&payment.Amount,
			&payment.AdminSplit,
			&payment.VendorSplit,
			&payment.Method,
			&payment.Status,
			&payment.TransactionRef,
			&payment.CreatedAt,
			&payment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}

func (r *paymentRepository) Count(ctx context.Context, filter PaymentFilter) (int64, error) {
	where, args := buildPaymentFilter(filter)

	query := fmt.Sprintf(`SELECT COUNT(id) FROM payments %s`, where)

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count payments", zap.Error(err))
		return 0, fmt.Errorf("count payments: %w", err)
	}

	return total, nil
}

func buildPaymentFilter(filter PaymentFilter) (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.ClientID != nil {
		add("client_id = $%d", *filter.ClientID)
	}
	if filter.VendorID != nil {
		add("vendor_id = $%d", *filter.VendorID)
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.Method != nil {
		add("method = $%d", *filter.Method)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}

	if len(clauses) == 0 {
		return "", nil
	}

	where := "WHERE " + clauses[0]
	for _, clause := range clauses[1:] {
		where += " AND " + clause
	}

	return where, args
}

func (r *paymentRepository) AttachTransactionRef(ctx context.Context, paymentID uuid.UUID, ref string) error {
	query := `
		UPDATE payments
		SET transaction_ref = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, paymentID, ref)
	if err != nil {
		r.log.Error("Failed to attach transaction ref",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.String("transaction_ref", ref),
		)
		return fmt.Errorf("attach transaction ref to payment %s: %w", paymentID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", paymentID.String())
	}

	return nil
}

func (r *paymentRepository) TransitionStatus(ctx context.Context, paymentID uuid.UUID, from, to entity.PaymentStatus) (bool, error) {
	query := `
		UPDATE payments
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`

	result, err := r.db.Exec(ctx, query, paymentID, to, from)
	if err != nil {
		r.log.Error("Failed to transition payment status",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("transition payment %s from %s to %s: %w", paymentID.String(), string(from), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}
