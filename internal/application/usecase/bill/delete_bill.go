package bill

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/adapter"
)

// DeleteBillInput represents the input for bill deletion.
type DeleteBillInput struct {
	BillID uuid.UUID
	UserID uuid.UUID
}

// DeleteBillUseCase handles bill deletion logic.
type DeleteBillUseCase struct {
	billRepo adapter.BillRepository
	cache    adapter.SnapshotCache
}

// NewDeleteBillUseCase creates a new DeleteBillUseCase instance.
func NewDeleteBillUseCase(billRepo adapter.BillRepository, cache adapter.SnapshotCache) *DeleteBillUseCase {
	return &DeleteBillUseCase{
		billRepo: billRepo,
		cache:    cache,
	}
}

// Execute performs the bill deletion.
func (uc *DeleteBillUseCase) Execute(ctx context.Context, input DeleteBillInput) error {
	if _, err := findOwnedBill(ctx, uc.billRepo, input.BillID, input.UserID); err != nil {
		return err
	}

	if err := uc.billRepo.Delete(ctx, input.BillID); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	invalidateSnapshot(ctx, uc.cache, input.UserID)
	return nil
}
