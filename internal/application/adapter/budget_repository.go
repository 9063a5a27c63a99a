package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

// BudgetRepository persists the single BudgetSettings row of each user.
type BudgetRepository interface {
	// FindByUserID returns domainerror.ErrBudgetSettingsNotFound when the user has no row.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.BudgetSettings, error)

	// Upsert inserts or replaces the settings keyed by user.
	Upsert(ctx context.Context, settings *entity.BudgetSettings) error
}
