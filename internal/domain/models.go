package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resource types recorded by the audit trail
const (
	ResourceProduct = "product"
	ResourceVariant = "variant"
	ResourceImage   = "image"
)

// ResourceRecord is one remote resource created by an orchestration run.
// There is no rollback on mid-pipeline failure; these rows are the record
// that makes manual or automated cleanup possible afterwards.
type ResourceRecord struct {
	ID           uuid.UUID
	RunID        uuid.UUID
	ShopDomain   string
	ResourceType string
	RemoteID     string
	CreatedAt    time.Time
}
