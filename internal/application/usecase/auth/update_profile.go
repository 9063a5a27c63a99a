package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

// UpdateProfileInput carries the fields to change. Nil fields are left alone.
type UpdateProfileInput struct {
	UserID       uuid.UUID
	Name         *string
	WeeklyDigest *bool
}

// UpdateProfileOutput represents the output of UpdateProfileUseCase.
type UpdateProfileOutput struct {
	User *entity.User
}

// UpdateProfileUseCase changes the display name and the digest opt-in.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute applies the changes and saves the user.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeMissingFields,
				"name must not be empty",
				nil,
			)
		}
		user.Name = name
	}
	if input.WeeklyDigest != nil {
		user.WeeklyDigestOptIn = *input.WeeklyDigest
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdateProfileOutput{
		User: user,
	}, nil
}
