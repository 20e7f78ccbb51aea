package repository

import (
	"context"
	"fmt"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SubaccountRepository stores platform-level processor subaccounts. The
// admin row is a singleton: chapa_subaccounts has a unique index on type, so
// concurrent check-then-create attempts are resolved by the constraint.
type SubaccountRepository interface {
	Create(ctx context.Context, subaccount *entity.ChapaSubaccount) error
	FindByType(ctx context.Context, subType entity.SubaccountType) (*entity.ChapaSubaccount, error)
}

type subaccountRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSubaccountRepository(db database.PgxIface, log *zap.Logger) SubaccountRepository {
	return &subaccountRepository{
		db:  db,
		log: log.With(zap.String("repository", "subaccount")),
	}
}

func (r *subaccountRepository) Create(ctx context.Context, subaccount *entity.ChapaSubaccount) error {
	query := `
		INSERT INTO chapa_subaccounts (id, account_id, type, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		subaccount.ID,
		subaccount.AccountID,
		subaccount.Type,
		subaccount.CreatedAt,
	)

	if err != nil {
		if !database.IsUniqueViolation(err) {
			r.log.Error("Failed to create subaccount",
				zap.Error(err),
				zap.String("type", string(subaccount.Type)),
			)
		}
		return fmt.Errorf("create %s subaccount: %w", string(subaccount.Type), err)
	}

	return nil
}

func (r *subaccountRepository) FindByType(ctx context.Context, subType entity.SubaccountType) (*entity.ChapaSubaccount, error) {
	query := `
		SELECT id, account_id, type, created_at
		FROM chapa_subaccounts
		WHERE type = $1
	`

	var subaccount entity.ChapaSubaccount
	err := r.db.QueryRow(ctx, query, subType).Scan(
		&subaccount.ID,
		&subaccount.AccountID,
		&subaccount.Type,
		&subaccount.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find subaccount",
			zap.Error(err),
			zap.String("type", string(subType)),
		)
		return nil, fmt.Errorf("find %s subaccount: %w", string(subType), err)
	}

	return &subaccount, nil
}
