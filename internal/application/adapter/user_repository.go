package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

// UserRepository stores budget owners. Lookups of a missing user return
// domainerror.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail matches the already normalized address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update saves the profile fields: name and digest opt-in.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user together with their budget settings, bills,
	// credit cards and refresh tokens in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindDigestRecipients lists the users opted in to the weekly digest.
	FindDigestRecipients(ctx context.Context) ([]*entity.User, error)

	// MarkDigestSent records when the weekly digest went out to the user.
	MarkDigestSent(ctx context.Context, id uuid.UUID, at time.Time) error
}
