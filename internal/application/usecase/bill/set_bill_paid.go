package bill

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
)

// SetBillPaidInput represents the input for an explicit pay or unpay action.
type SetBillPaidInput struct {
	BillID uuid.UUID
	UserID uuid.UUID
	Paid   bool
}

// SetBillPaidOutput represents the output of a status change.
type SetBillPaidOutput struct {
	Bill *entity.Bill
}

// SetBillPaidUseCase toggles a bill's status.
type SetBillPaidUseCase struct {
	billRepo adapter.BillRepository
	cache    adapter.SnapshotCache
}

// NewSetBillPaidUseCase creates a new SetBillPaidUseCase instance.
func NewSetBillPaidUseCase(billRepo adapter.BillRepository, cache adapter.SnapshotCache) *SetBillPaidUseCase {
	return &SetBillPaidUseCase{
		billRepo: billRepo,
		cache:    cache,
	}
}

// Execute sets the status. An unpaid bill whose due day has passed will be
// resolved back to paid by the next snapshot.
func (uc *SetBillPaidUseCase) Execute(ctx context.Context, input SetBillPaidInput) (*SetBillPaidOutput, error) {
	bill, err := findOwnedBill(ctx, uc.billRepo, input.BillID, input.UserID)
	if err != nil {
		return nil, err
	}

	status := entity.BillStatusUnpaid
	if input.Paid {
		status = entity.BillStatusPaid
	}

	if bill.Status != status {
		bill.Status = status
		bill.UpdatedAt = time.Now().UTC()
		if err := uc.billRepo.Update(ctx, bill); err != nil {
			return nil, fmt.Errorf("failed to update bill status: %w", err)
		}
		invalidateSnapshot(ctx, uc.cache, input.UserID)
	}

	return &SetBillPaidOutput{
		Bill: bill,
	}, nil
}
