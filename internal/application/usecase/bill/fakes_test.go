package bill

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

type fakeBillRepo struct {
	bills map[uuid.UUID]*entity.Bill
}

func newFakeBillRepo(bills ...*entity.Bill) *fakeBillRepo {
	r := &fakeBillRepo{bills: map[uuid.UUID]*entity.Bill{}}
	for _, b := range bills {
		r.bills[b.ID] = b
	}
	return r
}

func (r *fakeBillRepo) Create(_ context.Context, bill *entity.Bill) error {
	copied := *bill
	r.bills[bill.ID] = &copied
	return nil
}

func (r *fakeBillRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Bill, error) {
	b, ok := r.bills[id]
	if !ok {
		return nil, domainerror.ErrBillNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Bill, error) {
	var out []*entity.Bill
	for _, b := range r.bills {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out, nil
}

func (r *fakeBillRepo) Update(_ context.Context, bill *entity.Bill) error {
	copied := *bill
	r.bills[bill.ID] = &copied
	return nil
}

func (r *fakeBillRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.bills, id)
	return nil
}

func (r *fakeBillRepo) MarkPaid(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if b, ok := r.bills[id]; ok {
			b.Status = entity.BillStatusPaid
		}
	}
	return nil
}

type fakeCache struct {
	invalidated []uuid.UUID
}

func (c *fakeCache) Get(context.Context, uuid.UUID, time.Time) (*entity.BudgetSnapshot, error) {
	return nil, nil
}

func (c *fakeCache) Generation(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func (c *fakeCache) Set(context.Context, uuid.UUID, time.Time, int64, *entity.BudgetSnapshot) error {
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	return nil
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func onDay(day int) fixedClock {
	return fixedClock(time.Date(2026, time.October, day, 12, 0, 0, 0, time.UTC))
}
