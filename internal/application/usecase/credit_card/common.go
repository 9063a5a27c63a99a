// Package creditcard contains credit card use cases.
package creditcard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

func validateAmounts(amounts ...decimal.Decimal) error {
	for _, a := range amounts {
		if a.IsNegative() {
			return domainerror.NewCreditCardError(
				domainerror.ErrCodeInvalidCardAmounts,
				"credit limit and available credit must not be negative",
				domainerror.ErrInvalidCardAmounts,
			)
		}
	}
	return nil
}

func findOwnedCard(ctx context.Context, repo adapter.CreditCardRepository, cardID, userID uuid.UUID) (*entity.CreditCard, error) {
	card, err := repo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCreditCardNotFound) {
			return nil, domainerror.NewCreditCardError(
				domainerror.ErrCodeCreditCardNotFound,
				"credit card not found",
				domainerror.ErrCreditCardNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find credit card: %w", err)
	}

	if card.UserID != userID {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeNotCardOwner,
			"not authorized to modify this credit card",
			domainerror.ErrNotCardOwner,
		)
	}
	return card, nil
}

func invalidateSnapshot(ctx context.Context, cache adapter.SnapshotCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate budget snapshot cache",
			"user_id", userID,
			"error", err,
		)
	}
}
