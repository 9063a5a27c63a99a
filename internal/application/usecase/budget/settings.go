package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

// GetSettingsInput represents the input for reading budget settings.
type GetSettingsInput struct {
	UserID uuid.UUID
}

// GetSettingsOutput represents the output of reading budget settings.
type GetSettingsOutput struct {
	Settings *entity.BudgetSettings
}

// GetSettingsUseCase returns the user's settings, creating the zero budget if needed.
type GetSettingsUseCase struct {
	loader *SessionLoader
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(loader *SessionLoader) *GetSettingsUseCase {
	return &GetSettingsUseCase{
		loader: loader,
	}
}

// Execute reads the budget settings.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, input GetSettingsInput) (*GetSettingsOutput, error) {
	settings, err := uc.loader.loadSettings(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetSettingsOutput{
		Settings: settings,
	}, nil
}

// UpsertSettingsInput represents the input for saving budget settings.
type UpsertSettingsInput struct {
	UserID        uuid.UUID
	MonthlyIncome decimal.Decimal
	SavingsGoal   decimal.Decimal
}

// UpsertSettingsOutput represents the output of saving budget settings.
type UpsertSettingsOutput struct {
	Settings *entity.BudgetSettings
}

// UpsertSettingsUseCase saves income and savings goal.
type UpsertSettingsUseCase struct {
	loader     *SessionLoader
	budgetRepo adapter.BudgetRepository
	cache      adapter.SnapshotCache
}

// NewUpsertSettingsUseCase creates a new UpsertSettingsUseCase instance.
func NewUpsertSettingsUseCase(loader *SessionLoader, budgetRepo adapter.BudgetRepository, cache adapter.SnapshotCache) *UpsertSettingsUseCase {
	return &UpsertSettingsUseCase{
		loader:     loader,
		budgetRepo: budgetRepo,
		cache:      cache,
	}
}

// Execute validates and stores the settings. The remembered weekly target
// is kept even if it no longer matches a tier.
func (uc *UpsertSettingsUseCase) Execute(ctx context.Context, input UpsertSettingsInput) (*UpsertSettingsOutput, error) {
	if input.MonthlyIncome.IsNegative() || input.SavingsGoal.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetSettings,
			"monthly income and savings goal must not be negative",
			domainerror.ErrInvalidBudgetSettings,
		)
	}

	settings, err := uc.loader.loadSettings(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	settings.MonthlyIncome = input.MonthlyIncome
	settings.SavingsGoal = input.SavingsGoal
	settings.UpdatedAt = time.Now().UTC()

	if err := uc.budgetRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save budget settings: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, input.UserID); err != nil {
			slog.Warn("Failed to invalidate budget snapshot cache", "user_id", input.UserID, "error", err)
		}
	}

	return &UpsertSettingsOutput{
		Settings: settings,
	}, nil
}
