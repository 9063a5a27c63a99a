package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
	"github.com/vibe-budget/backend/internal/domain/service"
)

// GetCoachTipInput represents the input for a coaching tip.
type GetCoachTipInput struct {
	UserID uuid.UUID
}

// GetCoachTipOutput is a generated tip and the tier it is about.
type GetCoachTipOutput struct {
	Tip      string
	BestTier entity.WeeklyTier
}

// GetCoachTipUseCase asks the coaching model for a suggestion for this week.
type GetCoachTipUseCase struct {
	loader *SessionLoader
	coach  adapter.BudgetCoach
}

// NewGetCoachTipUseCase creates a new GetCoachTipUseCase instance.
func NewGetCoachTipUseCase(loader *SessionLoader, coach adapter.BudgetCoach) *GetCoachTipUseCase {
	return &GetCoachTipUseCase{
		loader: loader,
		coach:  coach,
	}
}

// Execute generates the tip.
func (uc *GetCoachTipUseCase) Execute(ctx context.Context, input GetCoachTipInput) (*GetCoachTipOutput, error) {
	if uc.coach == nil || !uc.coach.IsAvailable() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeCoachNotConfigured,
			"budget coach is not configured",
			domainerror.ErrCoachNotConfigured,
		)
	}

	session, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	snapshot := uc.loader.recompute(ctx, session)
	tiers := session.Tiers()
	best, _ := service.BestTier(tiers)

	tip, err := uc.coach.Tip(ctx, adapter.CoachRequest{
		Snapshot: snapshot,
		Tiers:    tiers,
		BestTier: best,
	})
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeCoachFailed,
			"budget coach failed",
			err,
		)
	}

	return &GetCoachTipOutput{
		Tip:      tip,
		BestTier: best,
	}, nil
}
