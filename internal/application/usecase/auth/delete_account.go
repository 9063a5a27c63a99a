package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/adapter"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID   uuid.UUID
	Password string
}

// DeleteAccountUseCase removes a user and everything they own.
type DeleteAccountUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	cache           adapter.SnapshotCache
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
// The cache may be nil.
func NewDeleteAccountUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	cache adapter.SnapshotCache,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		cache:           cache,
	}
}

// Execute re-checks the password, then deletes the user with their budget,
// bills, cards and refresh tokens.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid password",
			domainerror.ErrInvalidCredentials,
		)
	}

	if err := uc.userRepo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, user.ID); err != nil {
			slog.Warn("Failed to drop cached snapshots of deleted user", "user_id", user.ID, "error", err)
		}
	}

	slog.Info("Account deleted", "user_id", user.ID)
	return nil
}
