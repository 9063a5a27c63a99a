package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

// SnapshotCache stores computed snapshots per user and calendar day.
type SnapshotCache interface {
	// Get returns the cached snapshot, or nil on a miss.
	Get(ctx context.Context, userID uuid.UUID, day time.Time) (*entity.BudgetSnapshot, error)

	// Generation returns the user's current cache generation. Read it before
	// loading the data a snapshot is computed from.
	Generation(ctx context.Context, userID uuid.UUID) (int64, error)

	// Set stores a snapshot computed at the given generation. The write is
	// skipped when an Invalidate has advanced the generation since.
	Set(ctx context.Context, userID uuid.UUID, day time.Time, generation int64, snapshot *entity.BudgetSnapshot) error

	// Invalidate advances the user's generation and drops their cached snapshots.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
