package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

// CreditCardRepository defines the interface for credit card persistence operations.
type CreditCardRepository interface {
	// Create creates a new credit card.
	Create(ctx context.Context, card *entity.CreditCard) error

	// FindByID retrieves a credit card by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CreditCard, error)

	// FindByUserID retrieves all cards for a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CreditCard, error)

	// Update saves every field of an existing card.
	Update(ctx context.Context, card *entity.CreditCard) error

	// Delete removes a credit card.
	Delete(ctx context.Context, id uuid.UUID) error
}
