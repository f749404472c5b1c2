package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and bookkeeping timestamps embedded in
// every ledger record and aggregate. Ledger records never change after
// creation, so for them UpdatedAt always equals CreatedAt.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity returns a fresh id with both timestamps set to now (UTC).
func NewBaseEntity() BaseEntity {
	at := time.Now().UTC()
	return BaseEntity{ID: uuid.New(), CreatedAt: at, UpdatedAt: at}
}
