package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

type fakeSnapshotCache struct {
	invalidated []uuid.UUID
}

func (c *fakeSnapshotCache) Get(context.Context, uuid.UUID, time.Time) (*entity.BudgetSnapshot, error) {
	return nil, nil
}

func (c *fakeSnapshotCache) Generation(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func (c *fakeSnapshotCache) Set(context.Context, uuid.UUID, time.Time, int64, *entity.BudgetSnapshot) error {
	return nil
}

func (c *fakeSnapshotCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func registerKim(t *testing.T, users *fakeUserRepo) *entity.User {
	t.Helper()
	out, err := newRegister(users, &fakeBudgetRepo{}, newFakeTokenService()).Execute(context.Background(), RegisterUserInput{
		Email: "kim@example.com", Name: "Kim", Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return out.User
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	kim := registerKim(t, users)

	out, err := NewGetProfileUseCase(users).Execute(ctx, GetProfileInput{UserID: kim.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.User.Email != "kim@example.com" {
		t.Errorf("expected kim, got %q", out.User.Email)
	}

	_, err = NewGetProfileUseCase(users).Execute(ctx, GetProfileInput{UserID: uuid.New()})
	assertAuthCode(t, err, domainerror.ErrCodeUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("changes name and digest opt-in", func(t *testing.T) {
		users := newFakeUserRepo()
		kim := registerKim(t, users)
		name, digest := "  Kimberly ", false

		out, err := NewUpdateProfileUseCase(users).Execute(ctx, UpdateProfileInput{
			UserID:       kim.ID,
			Name:         &name,
			WeeklyDigest: &digest,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.Name != "Kimberly" {
			t.Errorf("expected trimmed name, got %q", out.User.Name)
		}
		if out.User.WeeklyDigestOptIn {
			t.Error("expected digest opt-out")
		}
	})

	t.Run("nil fields are untouched", func(t *testing.T) {
		users := newFakeUserRepo()
		kim := registerKim(t, users)

		out, err := NewUpdateProfileUseCase(users).Execute(ctx, UpdateProfileInput{UserID: kim.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.Name != "Kim" || !out.User.WeeklyDigestOptIn {
			t.Errorf("expected unchanged profile, got %+v", out.User)
		}
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		users := newFakeUserRepo()
		kim := registerKim(t, users)
		blank := "   "

		_, err := NewUpdateProfileUseCase(users).Execute(ctx, UpdateProfileInput{UserID: kim.ID, Name: &blank})
		assertAuthCode(t, err, domainerror.ErrCodeMissingFields)
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong password keeps the account", func(t *testing.T) {
		users := newFakeUserRepo()
		kim := registerKim(t, users)

		err := NewDeleteAccountUseCase(users, fakePasswordService{}, nil).Execute(ctx, DeleteAccountInput{
			UserID:   kim.ID,
			Password: "not-it",
		})
		assertAuthCode(t, err, domainerror.ErrCodeInvalidCredentials)
		if _, ok := users.users["kim@example.com"]; !ok {
			t.Error("expected the user to remain")
		}
	})

	t.Run("deletes the user and drops cached snapshots", func(t *testing.T) {
		users := newFakeUserRepo()
		kim := registerKim(t, users)
		cache := &fakeSnapshotCache{}

		err := NewDeleteAccountUseCase(users, fakePasswordService{}, cache).Execute(ctx, DeleteAccountInput{
			UserID:   kim.ID,
			Password: "supersecret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(users.users) != 0 {
			t.Error("expected the user to be deleted")
		}
		if len(cache.invalidated) != 1 || cache.invalidated[0] != kim.ID {
			t.Errorf("expected cache invalidation for %s, got %v", kim.ID, cache.invalidated)
		}
	})
}
