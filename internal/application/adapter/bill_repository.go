package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

// BillRepository defines the interface for bill persistence operations.
type BillRepository interface {
	// Create creates a new bill.
	Create(ctx context.Context, bill *entity.Bill) error

	// FindByID retrieves a bill by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)

	// FindByUserID retrieves all bills for a user ordered by due date.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Bill, error)

	// Update saves every field of an existing bill.
	Update(ctx context.Context, bill *entity.Bill) error

	// Delete removes a bill.
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkPaid flips the given unpaid bills to paid. Already paid bills are left alone.
	MarkPaid(ctx context.Context, ids []uuid.UUID) error
}
