// Package budget contains the budget derivation use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
	"github.com/vibe-budget/backend/internal/domain/service"
)

// Session owns one user's budget inputs for a single request. It is built by
// SessionLoader.Load and is not safe for concurrent use.
type Session struct {
	userID   uuid.UUID
	settings entity.BudgetSettings
	bills    []entity.Bill
	cards    []entity.CreditCard
	now      time.Time

	snapshot *entity.BudgetSnapshot
	pending  []entity.Bill
}

// NewSession builds a session from already loaded inputs.
func NewSession(settings entity.BudgetSettings, bills []entity.Bill, cards []entity.CreditCard, now time.Time) *Session {
	return &Session{
		userID:   settings.UserID,
		settings: settings,
		bills:    bills,
		cards:    cards,
		now:      now,
	}
}

// Recompute resolves past-due bills and derives a fresh snapshot.
// Bills that flipped to paid are queued until the session is committed.
func (s *Session) Recompute() entity.BudgetSnapshot {
	resolved, transitioned := service.ResolveBills(s.bills, s.now)
	s.bills = resolved
	s.pending = append(s.pending, transitioned...)

	snapshot := service.Aggregate(service.AggregateInput{
		MonthlyIncome: s.settings.MonthlyIncome,
		SavingsGoal:   s.settings.SavingsGoal,
		Bills:         s.bills,
		Cards:         s.cards,
		Now:           s.now,
	})
	s.snapshot = &snapshot
	return snapshot
}

// Snapshot returns the last computed snapshot, recomputing if there is none.
func (s *Session) Snapshot() entity.BudgetSnapshot {
	if s.snapshot == nil {
		return s.Recompute()
	}
	return *s.snapshot
}

// Tiers returns the five weekly tiers of the current snapshot with the
// remembered selection marked.
func (s *Session) Tiers() []entity.WeeklyTier {
	snapshot := s.Snapshot()
	tiers := service.GenerateTiers(snapshot.DiscretionLimit, snapshot.DiscretionaryLeft)
	return service.MarkSelected(tiers, s.settings.SelectedWeeklyTarget)
}

// SelectTier remembers value as the weekly target. The value must equal one
// of the current tier values; nil clears the selection.
func (s *Session) SelectTier(value *decimal.Decimal) error {
	if value == nil {
		s.settings.SelectedWeeklyTarget = nil
		return nil
	}

	tier, ok := service.FindTier(s.Tiers(), *value)
	if !ok {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidTierSelection,
			"selected weekly target does not match any tier",
			domainerror.ErrInvalidTierSelection,
		)
	}

	selected := tier.Value.Round(2)
	s.settings.SelectedWeeklyTarget = &selected
	s.settings.UpdatedAt = s.now
	return nil
}

// Settings returns the session's current budget settings.
func (s *Session) Settings() entity.BudgetSettings {
	return s.settings
}

// PendingTransitions returns the bills resolved to paid but not yet persisted.
func (s *Session) PendingTransitions() []entity.Bill {
	return s.pending
}

// Now is the instant the session treats as "today".
func (s *Session) Now() time.Time {
	return s.now
}

// SessionLoader assembles sessions from the repositories.
type SessionLoader struct {
	budgetRepo adapter.BudgetRepository
	billRepo   adapter.BillRepository
	cardRepo   adapter.CreditCardRepository
	clock      adapter.Clock
	metrics    adapter.BudgetMetrics
}

// NewSessionLoader creates a new SessionLoader instance. metrics may be nil.
func NewSessionLoader(
	budgetRepo adapter.BudgetRepository,
	billRepo adapter.BillRepository,
	cardRepo adapter.CreditCardRepository,
	clock adapter.Clock,
	metrics adapter.BudgetMetrics,
) *SessionLoader {
	return &SessionLoader{
		budgetRepo: budgetRepo,
		billRepo:   billRepo,
		cardRepo:   cardRepo,
		clock:      clock,
		metrics:    metrics,
	}
}

// Load reads all four inputs for userID. Any read failure yields
// BUD-020001 and no session, never a partial one.
func (l *SessionLoader) Load(ctx context.Context, userID uuid.UUID) (*Session, error) {
	settings, err := l.loadSettings(ctx, userID)
	if err != nil {
		return nil, unavailable(err)
	}

	billPtrs, err := l.billRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, unavailable(fmt.Errorf("failed to load bills: %w", err))
	}

	cardPtrs, err := l.cardRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, unavailable(fmt.Errorf("failed to load credit cards: %w", err))
	}

	bills := make([]entity.Bill, len(billPtrs))
	for i, b := range billPtrs {
		bills[i] = *b
	}
	cards := make([]entity.CreditCard, len(cardPtrs))
	for i, c := range cardPtrs {
		cards[i] = *c
	}

	return NewSession(*settings, bills, cards, l.clock.Now()), nil
}

// Commit persists the bills the session resolved to paid.
func (l *SessionLoader) Commit(ctx context.Context, s *Session) error {
	if len(s.pending) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(s.pending))
	for i, b := range s.pending {
		ids[i] = b.ID
	}

	if err := l.billRepo.MarkPaid(ctx, ids); err != nil {
		return fmt.Errorf("failed to persist resolved bills: %w", err)
	}

	slog.Info("Resolved past-due bills",
		"user_id", s.userID,
		"count", len(ids),
	)
	if l.metrics != nil {
		l.metrics.AddResolvedBills(len(ids))
	}
	s.pending = nil
	return nil
}

// loadSettings returns the user's settings, creating the zero budget on first access.
func (l *SessionLoader) loadSettings(ctx context.Context, userID uuid.UUID) (*entity.BudgetSettings, error) {
	settings, err := l.budgetRepo.FindByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domainerror.ErrBudgetSettingsNotFound) {
		return nil, fmt.Errorf("failed to load budget settings: %w", err)
	}

	settings = entity.NewDefaultBudgetSettings(userID)
	if err := l.budgetRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to create default budget settings: %w", err)
	}
	return settings, nil
}

// recompute runs Recompute, commits it and records its duration.
// A failed commit is logged: the next load resolves the same bills again.
func (l *SessionLoader) recompute(ctx context.Context, s *Session) entity.BudgetSnapshot {
	started := time.Now()
	snapshot := s.Recompute()
	if l.metrics != nil {
		l.metrics.ObserveRecompute(time.Since(started))
	}

	if err := l.Commit(ctx, s); err != nil {
		slog.Warn("Failed to persist resolved bills",
			"user_id", s.userID,
			"error", err,
		)
	}
	return snapshot
}

func unavailable(err error) error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeSnapshotUnavailable,
		"budget snapshot unavailable",
		errors.Join(domainerror.ErrSnapshotUnavailable, err),
	)
}
