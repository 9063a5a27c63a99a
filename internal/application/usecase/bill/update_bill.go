package bill

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/service"
)

// UpdateBillInput represents the input for a partial bill update.
type UpdateBillInput struct {
	BillID           uuid.UUID
	UserID           uuid.UUID
	Name             *string
	Amount           *decimal.Decimal
	DueDate          *int
	Type             *entity.BillType
	Status           *entity.BillStatus
	PaidByCreditCard *bool
}

// UpdateBillOutput represents the output of bill update.
type UpdateBillOutput struct {
	Bill *entity.Bill
}

// UpdateBillUseCase handles bill update logic.
type UpdateBillUseCase struct {
	billRepo adapter.BillRepository
	cache    adapter.SnapshotCache
	clock    adapter.Clock
}

// NewUpdateBillUseCase creates a new UpdateBillUseCase instance.
func NewUpdateBillUseCase(billRepo adapter.BillRepository, cache adapter.SnapshotCache, clock adapter.Clock) *UpdateBillUseCase {
	return &UpdateBillUseCase{
		billRepo: billRepo,
		cache:    cache,
		clock:    clock,
	}
}

// Execute applies the provided fields. Moving the due day behind today without
// an explicit status marks the bill paid; a future day keeps the current status.
func (uc *UpdateBillUseCase) Execute(ctx context.Context, input UpdateBillInput) (*UpdateBillOutput, error) {
	bill, err := findOwnedBill(ctx, uc.billRepo, input.BillID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		bill.Name = *input.Name
		if bill.Name == "" {
			bill.Name = entity.DefaultBillName
		}
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		bill.Amount = *input.Amount
	}

	if input.Type != nil {
		bill.Type = input.Type.Normalize()
	}

	if input.PaidByCreditCard != nil {
		bill.PaidByCreditCard = *input.PaidByCreditCard
	}

	if input.DueDate != nil {
		if err := validateDueDate(*input.DueDate); err != nil {
			return nil, err
		}
		bill.DueDate = *input.DueDate
		if input.Status == nil && service.IsPastDue(bill.DueDate, uc.clock.Now()) {
			bill.Status = entity.BillStatusPaid
		}
	}

	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return nil, err
		}
		bill.Status = *input.Status
	}

	bill.UpdatedAt = time.Now().UTC()

	if err := uc.billRepo.Update(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	invalidateSnapshot(ctx, uc.cache, input.UserID)

	return &UpdateBillOutput{
		Bill: bill,
	}, nil
}
