package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jafarshop/catalogapi/internal/domain"
)

// ResourceRecordRepository persists the ids of remote resources created by
// orchestration runs. The pipeline performs no rollback, so these records are
// the only trail for cleaning up after a mid-pipeline failure.
type ResourceRecordRepository interface {
	Create(ctx context.Context, record *domain.ResourceRecord) error
	ListByRunID(ctx context.Context, runID uuid.UUID) ([]*domain.ResourceRecord, error)
}

// Repositories holds all repository implementations
type Repositories struct {
	ResourceRecord ResourceRecordRepository
}

type nopResourceRecords struct{}

func (nopResourceRecords) Create(context.Context, *domain.ResourceRecord) error {
	return nil
}

func (nopResourceRecords) ListByRunID(context.Context, uuid.UUID) ([]*domain.ResourceRecord, error) {
	return nil, nil
}

// NewNopRepositories returns repositories that discard everything, used when
// no database is configured.
func NewNopRepositories() *Repositories {
	return &Repositories{ResourceRecord: nopResourceRecords{}}
}
