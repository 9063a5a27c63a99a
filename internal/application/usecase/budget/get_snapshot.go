package budget

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
)

// GetSnapshotInput represents the input for reading the budget snapshot.
type GetSnapshotInput struct {
	UserID uuid.UUID
}

// GetSnapshotOutput represents the derived snapshot.
type GetSnapshotOutput struct {
	Snapshot  entity.BudgetSnapshot
	FromCache bool
}

// GetSnapshotUseCase derives the budget snapshot through a per-day cache.
type GetSnapshotUseCase struct {
	loader  *SessionLoader
	cache   adapter.SnapshotCache
	metrics adapter.BudgetMetrics
}

// NewGetSnapshotUseCase creates a new GetSnapshotUseCase instance.
// cache and metrics may be nil.
func NewGetSnapshotUseCase(loader *SessionLoader, cache adapter.SnapshotCache, metrics adapter.BudgetMetrics) *GetSnapshotUseCase {
	return &GetSnapshotUseCase{
		loader:  loader,
		cache:   cache,
		metrics: metrics,
	}
}

// Execute returns the cached snapshot for today or recomputes it.
// Cache errors degrade to a recompute.
func (uc *GetSnapshotUseCase) Execute(ctx context.Context, input GetSnapshotInput) (*GetSnapshotOutput, error) {
	today := uc.loader.clock.Now()
	cacheable := false
	var generation int64

	if uc.cache != nil {
		var err error
		generation, err = uc.cache.Generation(ctx, input.UserID)
		if err != nil {
			slog.Warn("Failed to read budget snapshot cache generation", "user_id", input.UserID, "error", err)
		}
		cacheable = err == nil

		cached, err := uc.cache.Get(ctx, input.UserID, today)
		if err != nil {
			slog.Warn("Failed to read budget snapshot cache", "user_id", input.UserID, "error", err)
		}
		if cached != nil {
			uc.recordCache(true)
			return &GetSnapshotOutput{Snapshot: *cached, FromCache: true}, nil
		}
		uc.recordCache(false)
	}

	session, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	snapshot := uc.loader.recompute(ctx, session)

	if cacheable {
		if err := uc.cache.Set(ctx, input.UserID, session.Now(), generation, &snapshot); err != nil {
			slog.Warn("Failed to write budget snapshot cache", "user_id", input.UserID, "error", err)
		}
	}

	return &GetSnapshotOutput{
		Snapshot: snapshot,
	}, nil
}

func (uc *GetSnapshotUseCase) recordCache(hit bool) {
	if uc.metrics != nil {
		uc.metrics.IncSnapshotCache(hit)
	}
}
