package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/service"
)

// GetWeeklyTiersInput represents the input for reading weekly tiers.
type GetWeeklyTiersInput struct {
	UserID uuid.UUID
}

// GetWeeklyTiersOutput represents the five tiers and the snapshot they split.
type GetWeeklyTiersOutput struct {
	Tiers                []entity.WeeklyTier
	BestTier             entity.WeeklyTier
	Snapshot             entity.BudgetSnapshot
	SelectedWeeklyTarget *decimal.Decimal
}

// GetWeeklyTiersUseCase returns the weekly spending tiers.
type GetWeeklyTiersUseCase struct {
	loader *SessionLoader
}

// NewGetWeeklyTiersUseCase creates a new GetWeeklyTiersUseCase instance.
func NewGetWeeklyTiersUseCase(loader *SessionLoader) *GetWeeklyTiersUseCase {
	return &GetWeeklyTiersUseCase{
		loader: loader,
	}
}

// Execute derives the tiers from a fresh snapshot.
func (uc *GetWeeklyTiersUseCase) Execute(ctx context.Context, input GetWeeklyTiersInput) (*GetWeeklyTiersOutput, error) {
	session, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	uc.loader.recompute(ctx, session)

	return tiersOutput(session), nil
}

func tiersOutput(session *Session) *GetWeeklyTiersOutput {
	tiers := session.Tiers()
	best, _ := service.BestTier(tiers)
	return &GetWeeklyTiersOutput{
		Tiers:                tiers,
		BestTier:             best,
		Snapshot:             session.Snapshot(),
		SelectedWeeklyTarget: session.Settings().SelectedWeeklyTarget,
	}
}
