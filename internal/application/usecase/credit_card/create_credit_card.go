package creditcard

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

// CreateCreditCardInput represents the input for card creation.
type CreateCreditCardInput struct {
	UserID    uuid.UUID
	Name      string
	Limit     decimal.Decimal
	Available decimal.Decimal
}

// CreateCreditCardOutput represents the output of card creation.
type CreateCreditCardOutput struct {
	CreditCard *entity.CreditCard
}

// CreateCreditCardUseCase handles card creation logic.
type CreateCreditCardUseCase struct {
	cardRepo adapter.CreditCardRepository
	cache    adapter.SnapshotCache
}

// NewCreateCreditCardUseCase creates a new CreateCreditCardUseCase instance.
func NewCreateCreditCardUseCase(cardRepo adapter.CreditCardRepository, cache adapter.SnapshotCache) *CreateCreditCardUseCase {
	return &CreateCreditCardUseCase{
		cardRepo: cardRepo,
		cache:    cache,
	}
}

// Execute performs the card creation. Available above the limit is accepted.
func (uc *CreateCreditCardUseCase) Execute(ctx context.Context, input CreateCreditCardInput) (*CreateCreditCardOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeMissingCardName,
			"card name is required",
			nil,
		)
	}
	if err := validateAmounts(input.Limit, input.Available); err != nil {
		return nil, err
	}

	card := entity.NewCreditCard(input.UserID, name, input.Limit, input.Available)
	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create credit card: %w", err)
	}

	invalidateSnapshot(ctx, uc.cache, input.UserID)

	return &CreateCreditCardOutput{
		CreditCard: card,
	}, nil
}
