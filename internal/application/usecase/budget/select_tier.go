package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/application/adapter"
)

// SelectTierInput represents the input for choosing a weekly target.
// A nil Value clears the selection.
type SelectTierInput struct {
	UserID uuid.UUID
	Value  *decimal.Decimal
}

// SelectTierUseCase remembers the weekly target the user picked.
type SelectTierUseCase struct {
	loader     *SessionLoader
	budgetRepo adapter.BudgetRepository
}

// NewSelectTierUseCase creates a new SelectTierUseCase instance.
func NewSelectTierUseCase(loader *SessionLoader, budgetRepo adapter.BudgetRepository) *SelectTierUseCase {
	return &SelectTierUseCase{
		loader:     loader,
		budgetRepo: budgetRepo,
	}
}

// Execute validates the value against the current tiers and stores it.
// The selection never changes which tier is recommended.
func (uc *SelectTierUseCase) Execute(ctx context.Context, input SelectTierInput) (*GetWeeklyTiersOutput, error) {
	session, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	uc.loader.recompute(ctx, session)

	if err := session.SelectTier(input.Value); err != nil {
		return nil, err
	}

	settings := session.Settings()
	if err := uc.budgetRepo.Upsert(ctx, &settings); err != nil {
		return nil, fmt.Errorf("failed to save weekly target: %w", err)
	}

	return tiersOutput(session), nil
}
