// Package bill contains bill-related use cases.
package bill

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

const (
	minDueDay = 1
	maxDueDay = 31
)

func validateDueDate(day int) error {
	if day < minDueDay || day > maxDueDay {
		return domainerror.NewBillError(
			domainerror.ErrCodeInvalidDueDate,
			"due date must be a day between 1 and 31",
			domainerror.ErrInvalidDueDate,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewBillError(
			domainerror.ErrCodeInvalidBillAmount,
			"bill amount must not be negative",
			domainerror.ErrInvalidBillAmount,
		)
	}
	return nil
}

func validateStatus(status entity.BillStatus) error {
	if !status.IsValid() {
		return domainerror.NewBillError(
			domainerror.ErrCodeInvalidBillStatus,
			"bill status must be 'paid' or 'unpaid'",
			domainerror.ErrInvalidBillStatus,
		)
	}
	return nil
}

// findOwnedBill loads a bill and checks it belongs to userID.
func findOwnedBill(ctx context.Context, repo adapter.BillRepository, billID, userID uuid.UUID) (*entity.Bill, error) {
	bill, err := repo.FindByID(ctx, billID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBillNotFound) {
			return nil, domainerror.NewBillError(
				domainerror.ErrCodeBillNotFound,
				"bill not found",
				domainerror.ErrBillNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find bill: %w", err)
	}

	if bill.UserID != userID {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeNotBillOwner,
			"not authorized to modify this bill",
			domainerror.ErrNotBillOwner,
		)
	}
	return bill, nil
}

// invalidateSnapshot drops the cached snapshot. Failures are logged only.
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
