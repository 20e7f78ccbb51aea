package repository

import (
	"context"
	"fmt"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error

	// ConfirmIfPending promotes a pending booking to confirmed as a single
	// conditional update and reports whether this call performed the
	// transition. Racing confirmations cannot both win.
	ConfirmIfPending(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, order_id, client_id, service_id, vendor_id, event_date, location, attendees, special_requests, status, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, order_id, client_id, service_id, vendor_id, event_date, location, attendees, special_requests, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.OrderID,
		booking.ClientID,
		booking.ServiceID,
		booking.VendorID,
		booking.EventDate,
		booking.Location,
		booking.Attendees,
		booking.SpecialRequests,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("client_id", booking.ClientID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.OrderID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.OrderID,
		&booking.ClientID,
		&booking.ServiceID,
		&booking.VendorID,
		&booking.EventDate,
		&booking.Location,
		&booking.Attendees,
		&booking.SpecialRequests,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE client_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by client",
			zap.Error(err),
			zap.String("client_id", clientID.String()),
		)
		return nil, fmt.Errorf("find bookings by client %s: %w", clientID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.OrderID,
			&booking.ClientID,
			&booking.ServiceID,
			&booking.VendorID,
			&booking.EventDate,
			&booking.Location,
			&booking.Attendees,
			&booking.SpecialRequests,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(id) FROM bookings WHERE client_id = $1 AND deleted_at IS NULL`

	var total int64
	if err := r.db.QueryRow(ctx, query, clientID).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings by client",
			zap.Error(err),
			zap.String("client_id", clientID.String()),
		)
		return 0, fmt.Errorf("count bookings by client %s: %w", clientID.String(), err)
	}

	return total, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) ConfirmIfPending(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`

	result, err := r.db.Exec(ctx, query, bookingID, entity.BookingStatusConfirmed, entity.BookingStatusPending)
	if err != nil {
		r.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
