package creditcard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/adapter"
)

// DeleteCreditCardInput represents the input for card deletion.
type DeleteCreditCardInput struct {
	CardID uuid.UUID
	UserID uuid.UUID
}

// DeleteCreditCardUseCase handles card deletion logic.
type DeleteCreditCardUseCase struct {
	cardRepo adapter.CreditCardRepository
	cache    adapter.SnapshotCache
}

// NewDeleteCreditCardUseCase creates a new DeleteCreditCardUseCase instance.
func NewDeleteCreditCardUseCase(cardRepo adapter.CreditCardRepository, cache adapter.SnapshotCache) *DeleteCreditCardUseCase {
	return &DeleteCreditCardUseCase{
		cardRepo: cardRepo,
		cache:    cache,
	}
}

// Execute performs the card deletion.
func (uc *DeleteCreditCardUseCase) Execute(ctx context.Context, input DeleteCreditCardInput) error {
	if _, err := findOwnedCard(ctx, uc.cardRepo, input.CardID, input.UserID); err != nil {
		return err
	}

	if err := uc.cardRepo.Delete(ctx, input.CardID); err != nil {
		return fmt.Errorf("failed to delete credit card: %w", err)
	}

	invalidateSnapshot(ctx, uc.cache, input.UserID)
	return nil
}
