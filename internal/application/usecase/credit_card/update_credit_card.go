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

// UpdateCreditCardInput represents the input for a partial card update.
type UpdateCreditCardInput struct {
	CardID    uuid.UUID
	UserID    uuid.UUID
	Name      *string
	Limit     *decimal.Decimal
	Available *decimal.Decimal
}

// UpdateCreditCardOutput represents the output of card update.
type UpdateCreditCardOutput struct {
	CreditCard *entity.CreditCard
}

// UpdateCreditCardUseCase handles card update logic.
type UpdateCreditCardUseCase struct {
	cardRepo adapter.CreditCardRepository
	cache    adapter.SnapshotCache
}

// NewUpdateCreditCardUseCase creates a new UpdateCreditCardUseCase instance.
func NewUpdateCreditCardUseCase(cardRepo adapter.CreditCardRepository, cache adapter.SnapshotCache) *UpdateCreditCardUseCase {
	return &UpdateCreditCardUseCase{
		cardRepo: cardRepo,
		cache:    cache,
	}
}

// Execute applies the provided fields and refreshes LastUpdated.
func (uc *UpdateCreditCardUseCase) Execute(ctx context.Context, input UpdateCreditCardInput) (*UpdateCreditCardOutput, error) {
	card, err := findOwnedCard(ctx, uc.cardRepo, input.CardID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewCreditCardError(
				domainerror.ErrCodeMissingCardName,
				"card name is required",
				nil,
			)
		}
		card.Name = name
	}

	if input.Limit != nil {
		if err := validateAmounts(*input.Limit); err != nil {
			return nil, err
		}
		card.Limit = *input.Limit
	}

	if input.Available != nil {
		if err := validateAmounts(*input.Available); err != nil {
			return nil, err
		}
		card.Available = *input.Available
	}

	card.Touch()

	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update credit card: %w", err)
	}

	invalidateSnapshot(ctx, uc.cache, input.UserID)

	return &UpdateCreditCardOutput{
		CreditCard: card,
	}, nil
}
