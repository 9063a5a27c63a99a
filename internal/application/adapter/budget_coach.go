package adapter

import (
	"context"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

// CoachRequest is the budget picture handed to the coaching model.
type CoachRequest struct {
	Snapshot entity.BudgetSnapshot
	Tiers    []entity.WeeklyTier
	BestTier entity.WeeklyTier
}

// BudgetCoach produces a short spending tip for the current week.
type BudgetCoach interface {
	// Tip returns a one or two sentence suggestion.
	Tip(ctx context.Context, request CoachRequest) (string, error)

	// IsAvailable checks if the coach is properly configured.
	IsAvailable() bool
}
