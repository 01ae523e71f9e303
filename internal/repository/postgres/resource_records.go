package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
)

type resourceRecordRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewResourceRecordRepository creates a new resource record repository
func NewResourceRecordRepository(db *sql.DB, logger *zap.Logger) *resourceRecordRepository {
	return &resourceRecordRepository{
		db:     db,
		logger: logger,
	}
}

func (r *resourceRecordRepository) Create(ctx context.Context, record *domain.ResourceRecord) error {
	query := `
		INSERT INTO created_resources (id, run_id, shop_domain, resource_type, remote_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.RunID,
		record.ShopDomain,
		record.ResourceType,
		record.RemoteID,
		record.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create resource record", zap.Error(err))
		return err
	}

	return nil
}

func (r *resourceRecordRepository) ListByRunID(ctx context.Context, runID uuid.UUID) ([]*domain.ResourceRecord, error) {
	query := `
		SELECT id, run_id, shop_domain, resource_type, remote_id, created_at
		FROM created_resources
		WHERE run_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		r.logger.Error("Failed to list resource records", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var records []*domain.ResourceRecord
	for rows.Next() {
		record := &domain.ResourceRecord{}
		if err := rows.Scan(
			&record.ID,
			&record.RunID,
			&record.ShopDomain,
			&record.ResourceType,
			&record.RemoteID,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
