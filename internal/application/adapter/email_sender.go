// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// WeeklyDigestInput carries everything the weekly digest email shows.
type WeeklyDigestInput struct {
	UserEmail string
	UserName  string
	Snapshot  entity.BudgetSnapshot
	BestTier  entity.WeeklyTier
}

// DigestMailer renders and sends the weekly budget digest.
type DigestMailer interface {
	SendWeeklyDigest(ctx context.Context, input WeeklyDigestInput) (*SendEmailResult, error)
}
