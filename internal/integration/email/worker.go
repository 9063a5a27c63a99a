package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/application/usecase/budget"
	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

// RecipientFinder lists the users who opted in to the weekly digest and
// records each send, so a restarted worker does not mail a user twice a day.
type RecipientFinder interface {
	FindDigestRecipients(ctx context.Context) ([]*entity.User, error)
	MarkDigestSent(ctx context.Context, id uuid.UUID, at time.Time) error
}

// DigestSender sends one user's digest.
type DigestSender interface {
	Execute(ctx context.Context, input budget.SendWeeklyDigestInput) (*budget.SendWeeklyDigestOutput, error)
}

// Worker sends the weekly digest to every opted-in user once on the configured weekday.
type Worker struct {
	recipients   RecipientFinder
	sender       DigestSender
	clock        adapter.Clock
	weekday      time.Weekday
	pollInterval time.Duration

	lastRun time.Time
}

// WorkerConfig holds configuration for the digest worker.
type WorkerConfig struct {
	Weekday      time.Weekday
	PollInterval time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Weekday:      time.Monday,
		PollInterval: 15 * time.Minute,
	}
}

// NewWorker creates a new digest worker.
func NewWorker(recipients RecipientFinder, sender DigestSender, clock adapter.Clock, config WorkerConfig) *Worker {
	return &Worker{
		recipients:   recipients,
		sender:       sender,
		clock:        clock,
		weekday:      config.Weekday,
		pollInterval: config.PollInterval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Digest worker started",
		"weekday", w.weekday,
		"poll_interval", w.pollInterval,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Digest worker shutting down")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick runs the batch at most once per calendar day, on the configured weekday.
func (w *Worker) tick(ctx context.Context) {
	now := w.clock.Now()
	if now.Weekday() != w.weekday || sameDay(now, w.lastRun) {
		return
	}
	w.lastRun = now
	w.RunOnce(ctx)
}

// RunOnce sends the digest to every current recipient not yet mailed today and
// returns how many were sent.
func (w *Worker) RunOnce(ctx context.Context) int {
	now := w.clock.Now()
	users, err := w.recipients.FindDigestRecipients(ctx)
	if err != nil {
		slog.Error("Failed to list digest recipients", "error", err)
		return 0
	}

	sent := 0
	for _, user := range users {
		select {
		case <-ctx.Done():
			return sent
		default:
		}

		logger := slog.With("user_id", user.ID)
		if user.LastDigestSentAt != nil && sameDay(user.LastDigestSentAt.In(now.Location()), now) {
			logger.Debug("Digest already sent today")
			continue
		}

		if _, err := w.sender.Execute(ctx, budget.SendWeeklyDigestInput{UserID: user.ID}); err != nil {
			if errors.Is(err, domainerror.ErrDigestNotEnabled) {
				logger.Debug("Digest skipped", "reason", err)
				continue
			}
			logger.Error("Failed to send weekly digest", "error", err)
			continue
		}
		sent++

		if err := w.recipients.MarkDigestSent(ctx, user.ID, now); err != nil {
			logger.Error("Failed to record weekly digest send", "error", err)
		}
	}

	slog.Info("Weekly digest batch finished", "recipients", len(users), "sent", sent)
	return sent
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
