package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/adapter"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
	"github.com/vibe-budget/backend/internal/domain/service"
)

// SendWeeklyDigestInput represents the input for sending the digest.
type SendWeeklyDigestInput struct {
	UserID uuid.UUID
}

// SendWeeklyDigestOutput represents the outcome of a digest send.
type SendWeeklyDigestOutput struct {
	SentTo    string
	MessageID string
}

// SendWeeklyDigestUseCase emails the user their snapshot and recommended tier.
type SendWeeklyDigestUseCase struct {
	loader   *SessionLoader
	userRepo adapter.UserRepository
	mailer   adapter.DigestMailer
}

// NewSendWeeklyDigestUseCase creates a new SendWeeklyDigestUseCase instance.
// A nil mailer disables the digest.
func NewSendWeeklyDigestUseCase(loader *SessionLoader, userRepo adapter.UserRepository, mailer adapter.DigestMailer) *SendWeeklyDigestUseCase {
	return &SendWeeklyDigestUseCase{
		loader:   loader,
		userRepo: userRepo,
		mailer:   mailer,
	}
}

// Execute sends the digest to the user if they opted in.
func (uc *SendWeeklyDigestUseCase) Execute(ctx context.Context, input SendWeeklyDigestInput) (*SendWeeklyDigestOutput, error) {
	if uc.mailer == nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeDigestNotEnabled,
			"weekly digest is not enabled",
			domainerror.ErrDigestNotEnabled,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.WeeklyDigestOptIn {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeDigestNotEnabled,
			"user has not opted in to the weekly digest",
			domainerror.ErrDigestNotEnabled,
		)
	}

	session, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	snapshot := uc.loader.recompute(ctx, session)
	best, _ := service.BestTier(session.Tiers())

	result, err := uc.mailer.SendWeeklyDigest(ctx, adapter.WeeklyDigestInput{
		UserEmail: user.Email,
		UserName:  user.Name,
		Snapshot:  snapshot,
		BestTier:  best,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Weekly digest sent",
		"user_id", user.ID,
		"message_id", result.ResendID,
	)

	return &SendWeeklyDigestOutput{
		SentTo:    user.Email,
		MessageID: result.ResendID,
	}, nil
}
