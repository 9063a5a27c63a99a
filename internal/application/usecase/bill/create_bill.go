package bill

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/service"
)

// CreateBillInput represents the input for bill creation.
type CreateBillInput struct {
	UserID           uuid.UUID
	Name             string
	Amount           decimal.Decimal
	DueDate          int
	Type             entity.BillType
	Status           *entity.BillStatus // Optional, derived from the due date when nil
	PaidByCreditCard bool
}

// CreateBillOutput represents the output of bill creation.
type CreateBillOutput struct {
	Bill *entity.Bill
}

// CreateBillUseCase handles bill creation logic.
type CreateBillUseCase struct {
	billRepo adapter.BillRepository
	cache    adapter.SnapshotCache
	clock    adapter.Clock
}

// NewCreateBillUseCase creates a new CreateBillUseCase instance.
func NewCreateBillUseCase(billRepo adapter.BillRepository, cache adapter.SnapshotCache, clock adapter.Clock) *CreateBillUseCase {
	return &CreateBillUseCase{
		billRepo: billRepo,
		cache:    cache,
		clock:    clock,
	}
}

// Execute performs the bill creation.
func (uc *CreateBillUseCase) Execute(ctx context.Context, input CreateBillInput) (*CreateBillOutput, error) {
	if err := validateDueDate(input.DueDate); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	bill := entity.NewBill(input.UserID, input.Name, input.Amount, input.DueDate, input.Type, input.PaidByCreditCard)

	switch {
	case input.Status != nil:
		if err := validateStatus(*input.Status); err != nil {
			return nil, err
		}
		bill.Status = *input.Status
	case service.IsPastDue(bill.DueDate, uc.clock.Now()):
		bill.Status = entity.BillStatusPaid
	}

	if err := uc.billRepo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	invalidateSnapshot(ctx, uc.cache, input.UserID)

	return &CreateBillOutput{
		Bill: bill,
	}, nil
}
