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

type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Vendor, error)
	UpdateStatus(ctx context.Context, vendorID uuid.UUID, status entity.VendorStatus) error

	// SetChapaSubaccount persists the processor-side subaccount id after
	// provisioning succeeds.
	SetChapaSubaccount(ctx context.Context, vendorID uuid.UUID, subaccountID string) error
}

type vendorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVendorRepository(db database.PgxIface, log *zap.Logger) VendorRepository {
	return &vendorRepository{
		db:  db,
		log: log.With(zap.String("repository", "vendor")),
	}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, user_id, business_name, account_number, status, chapa_subaccount_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		vendor.ID,
		vendor.UserID,
		vendor.BusinessName,
		vendor.AccountNumber,
		vendor.Status,
		vendor.ChapaSubaccountID,
		vendor.CreatedAt,
		vendor.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create vendor",
			zap.Error(err),
			zap.String("user_id", vendor.UserID.String()),
			zap.String("business_name", vendor.BusinessName),
		)
		return fmt.Errorf("create vendor %s: %w", vendor.BusinessName, err)
	}

	return nil
}

func (r *vendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	query := `
		SELECT id, user_id, business_name, account_number, status, chapa_subaccount_id, created_at, updated_at
		FROM vendors
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.scanVendor(r.db.QueryRow(ctx, query, id), id.String())
}

func (r *vendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Vendor, error) {
	query := `
		SELECT id, user_id, business_name, account_number, status, chapa_subaccount_id, created_at, updated_at
		FROM vendors
		WHERE user_id = $1 AND deleted_at IS NULL
	`

	return r.scanVendor(r.db.QueryRow(ctx, query, userID), userID.String())
}

func (r *vendorRepository) scanVendor(row pgx.Row, key string) (*entity.Vendor, error) {
	var vendor entity.Vendor
	err := row.Scan(
		&vendor.ID,
		&vendor.UserID,
		&vendor.BusinessName,
		&vendor.AccountNumber,
		&vendor.Status,
		&vendor.ChapaSubaccountID,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vendor",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("find vendor %s: %w", key, err)
	}

	return &vendor, nil
}

func (r *vendorRepository) UpdateStatus(ctx context.Context, vendorID uuid.UUID, status entity.VendorStatus) error {
	query := `
		UPDATE vendors
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, vendorID, status)
	if err != nil {
		r.log.Error("Failed to update vendor status",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update vendor %s status to %s: %w", vendorID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vendor %s not found", vendorID.String())
	}

	return nil
}

func (r *vendorRepository) SetChapaSubaccount(ctx context.Context, vendorID uuid.UUID, subaccountID string) error {
	query := `
		UPDATE vendors
		SET chapa_subaccount_id = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, vendorID, subaccountID)
	if err != nil {
		r.log.Error("Failed to set vendor subaccount",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
		)
		return fmt.Errorf("set vendor %s subaccount: %w", vendorID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vendor %s not found", vendorID.String())
	}

	return nil
}
