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

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*entity.Service, error)
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Service, error)
	CountActive(ctx context.Context) (int64, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, vendor_id, name, category, base_price, description, is_active, created_at, updated_at`

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (id, vendor_id, name, category, base_price, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		service.ID,
		service.VendorID,
		service.Name,
		service.Category,
		service.BasePrice,
		service.Description,
		service.IsActive,
		service.CreatedAt,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("vendor_id", service.VendorID.String()),
			zap.String("name", service.Name),
		)
		return fmt.Errorf("create service %s: %w", service.Name, err)
	}

	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1 AND deleted_at IS NULL`

	var service entity.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.VendorID,
		&service.Name,
		&service.Category,
		&service.BasePrice,
		&service.Description,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return &service, nil
}

func (r *serviceRepository) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*entity.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE vendor_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, vendorID)
	if err != nil {
		r.log.Error("Failed to find services by vendor",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
		)
		return nil, fmt.Errorf("find services by vendor %s: %w", vendorID.String(), err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *serviceRepository) ListActive(ctx context.Context, limit, offset int) ([]*entity.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE is_active = TRUE AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list active services", zap.Error(err))
		return nil, fmt.Errorf("list active services: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *serviceRepository) CountActive(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(id) FROM services WHERE is_active = TRUE AND deleted_at IS NULL`

	var total int64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.log.Error("Failed to count active services", zap.Error(err))
		return 0, fmt.Errorf("count active services: %w", err)
	}

	return total, nil
}

func (r *serviceRepository) collect(rows pgx.Rows) ([]*entity.Service, error) {
	var services []*entity.Service
	for rows.Next() {
		var service entity.Service
		if err := rows.Scan(
			&service.ID,
			&service.VendorID,
			&service.Name,
			&service.Category,
			&service.BasePrice,
			&service.Description,
			&service.IsActive,
			&service.CreatedAt,
			&service.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, &service)
	}

	return services, rows.Err()
}
