package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

var errBoom = errors.New("boom")

type fakeBudgetRepo struct {
	settings map[uuid.UUID]entity.BudgetSettings
	upserts  int
	failFind bool
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{settings: map[uuid.UUID]entity.BudgetSettings{}}
}

func (r *fakeBudgetRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.BudgetSettings, error) {
	if r.failFind {
		return nil, errBoom
	}
	s, ok := r.settings[userID]
	if !ok {
		return nil, domainerror.ErrBudgetSettingsNotFound
	}
	return &s, nil
}

func (r *fakeBudgetRepo) Upsert(_ context.Context, s *entity.BudgetSettings) error {
	r.upserts++
	r.settings[s.UserID] = *s
	return nil
}

type fakeBillRepo struct {
	bills    []*entity.Bill
	marked   []uuid.UUID
	failFind bool
	failMark bool
	onFind   func()
}

func (r *fakeBillRepo) Create(_ context.Context, b *entity.Bill) error {
	r.bills = append(r.bills, b)
	return nil
}

func (r *fakeBillRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Bill, error) {
	for _, b := range r.bills {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, domainerror.ErrBillNotFound
}

func (r *fakeBillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Bill, error) {
	if r.failFind {
		return nil, errBoom
	}
	if r.onFind != nil {
		r.onFind()
	}
	var out []*entity.Bill
	for _, b := range r.bills {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBillRepo) Update(context.Context, *entity.Bill) error { return nil }

func (r *fakeBillRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeBillRepo) MarkPaid(_ context.Context, ids []uuid.UUID) error {
	if r.failMark {
		return errBoom
	}
	r.marked = append(r.marked, ids...)
	for _, b := range r.bills {
		for _, id := range ids {
			if b.ID == id {
				b.Status = entity.BillStatusPaid
			}
		}
	}
	return nil
}

type fakeCardRepo struct {
	cards []*entity.CreditCard
}

func (r *fakeCardRepo) Create(_ context.Context, c *entity.CreditCard) error {
	r.cards = append(r.cards, c)
	return nil
}

func (r *fakeCardRepo) FindByID(context.Context, uuid.UUID) (*entity.CreditCard, error) {
	return nil, domainerror.ErrCreditCardNotFound
}

func (r *fakeCardRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.CreditCard, error) {
	var out []*entity.CreditCard
	for _, c := range r.cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCardRepo) Update(context.Context, *entity.CreditCard) error { return nil }

func (r *fakeCardRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type memoryCache struct {
	entries     map[string]entity.BudgetSnapshot
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]entity.BudgetSnapshot{}}
}

func cacheKey(userID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("%s:%s", userID, day.Format("2006-01-02"))
}

func (c *memoryCache) Get(_ context.Context, userID uuid.UUID, day time.Time) (*entity.BudgetSnapshot, error) {
	s, ok := c.entries[cacheKey(userID, day)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (c *memoryCache) Generation(context.Context, uuid.UUID) (int64, error) {
	return int64(c.invalidated), nil
}

func (c *memoryCache) Set(_ context.Context, userID uuid.UUID, day time.Time, generation int64, s *entity.BudgetSnapshot) error {
	if generation != int64(c.invalidated) {
		return nil
	}
	c.entries[cacheKey(userID, day)] = *s
	return nil
}

func (c *memoryCache) Invalidate(context.Context, uuid.UUID) error {
	c.invalidated++
	c.entries = map[string]entity.BudgetSnapshot{}
	return nil
}

type recordingMetrics struct {
	recomputes int
	hits       int
	misses     int
	resolved   int
}

func (m *recordingMetrics) ObserveRecompute(time.Duration) { m.recomputes++ }

func (m *recordingMetrics) IncSnapshotCache(hit bool) {
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func (m *recordingMetrics) AddResolvedBills(n int) { m.resolved += n }

type fakeUserRepo struct {
	user *entity.User
}

func (r *fakeUserRepo) Create(context.Context, *entity.User) error { return nil }

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, domainerror.ErrUserNotFound
	}
	return r.user, nil
}

func (r *fakeUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) Update(context.Context, *entity.User) error { return nil }

func (r *fakeUserRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func (r *fakeUserRepo) FindDigestRecipients(context.Context) ([]*entity.User, error) {
	if r.user == nil {
		return nil, nil
	}
	return []*entity.User{r.user}, nil
}

func (r *fakeUserRepo) MarkDigestSent(context.Context, uuid.UUID, time.Time) error { return nil }

type fakeMailer struct {
	sent []adapter.WeeklyDigestInput
}

func (m *fakeMailer) SendWeeklyDigest(_ context.Context, input adapter.WeeklyDigestInput) (*adapter.SendEmailResult, error) {
	m.sent = append(m.sent, input)
	return &adapter.SendEmailResult{ResendID: "msg-1"}, nil
}

type fakeCoach struct {
	available bool
	request   adapter.CoachRequest
	err       error
}

func (c *fakeCoach) Tip(_ context.Context, req adapter.CoachRequest) (string, error) {
	c.request = req
	if c.err != nil {
		return "", c.err
	}
	return "Stay in " + req.BestTier.Label, nil
}

func (c *fakeCoach) IsAvailable() bool { return c.available }

type fakeExporter struct {
	tiers int
}

func (e *fakeExporter) Export(_ entity.BudgetSnapshot, tiers []entity.WeeklyTier) ([]byte, error) {
	e.tiers = len(tiers)
	return []byte("xlsx"), nil
}

func (e *fakeExporter) ContentType() string { return "application/test" }

func (e *fakeExporter) FileExtension() string { return "xlsx" }

// fixture wires a loader around in-memory repositories for one user.
type fixture struct {
	userID  uuid.UUID
	budgets *fakeBudgetRepo
	bills   *fakeBillRepo
	cards   *fakeCardRepo
	metrics *recordingMetrics
	loader  *SessionLoader
}

func newFixture(day int) *fixture {
	f := &fixture{
		userID:  uuid.New(),
		budgets: newFakeBudgetRepo(),
		bills:   &fakeBillRepo{},
		cards:   &fakeCardRepo{},
		metrics: &recordingMetrics{},
	}
	clock := fixedClock(time.Date(2026, time.October, day, 8, 0, 0, 0, time.UTC))
	f.loader = NewSessionLoader(f.budgets, f.bills, f.cards, clock, f.metrics)
	return f
}

func (f *fixture) withBudget(income, savings string) *fixture {
	f.budgets.settings[f.userID] = entity.BudgetSettings{
		UserID:        f.userID,
		MonthlyIncome: decimal.RequireFromString(income),
		SavingsGoal:   decimal.RequireFromString(savings),
	}
	return f
}

func (f *fixture) withBill(amount string, dueDate int, billType entity.BillType, status entity.BillStatus, byCard bool) *entity.Bill {
	b := entity.NewBill(f.userID, "", decimal.RequireFromString(amount), dueDate, billType, byCard)
	b.Status = status
	f.bills.bills = append(f.bills.bills, b)
	return b
}

func (f *fixture) withCard(limit, available string) {
	f.cards.cards = append(f.cards.cards, entity.NewCreditCard(
		f.userID, "card", decimal.RequireFromString(limit), decimal.RequireFromString(available),
	))
}
