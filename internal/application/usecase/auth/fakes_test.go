package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	for k, u := range r.users {
		if u.ID == id {
			delete(r.users, k)
		}
	}
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

type fakeBudgetRepo struct {
	settings map[uuid.UUID]*entity.BudgetSettings
}

func (r *fakeBudgetRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.BudgetSettings, error) {
	if s, ok := r.settings[userID]; ok {
		return s, nil
	}
	return nil, domainerror.ErrBudgetSettingsNotFound
}

func (r *fakeBudgetRepo) Upsert(_ context.Context, s *entity.BudgetSettings) error {
	if r.settings == nil {
		r.settings = map[uuid.UUID]*entity.BudgetSettings{}
	}
	r.settings[s.UserID] = s
	return nil
}

// fakePasswordService prefixes passwords so hashes differ from input.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashed, password string) error {
	if hashed != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

type fakeTokenService struct {
	issued  int
	revoked map[string]bool
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{revoked: map[string]bool{}}
}

func (s *fakeTokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string, _ bool) (*adapter.TokenPair, error) {
	s.issued++
	return &adapter.TokenPair{
		AccessToken:  fmt.Sprintf("access|%s|%s|%d", userID, email, s.issued),
		RefreshToken: fmt.Sprintf("refresh|%s|%s|%d", userID, email, s.issued),
	}, nil
}

func (s *fakeTokenService) parse(token, kind string) (*adapter.TokenClaims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != kind {
		return nil, errors.New("bad token")
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, err
	}
	return &adapter.TokenClaims{UserID: id, Email: parts[2]}, nil
}

func (s *fakeTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.parse(token, "access")
}

func (s *fakeTokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.parse(token, "refresh")
}

func (s *fakeTokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	s.revoked[token] = true
	return nil
}

func (s *fakeTokenService) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	return !s.revoked[token], nil
}

func (r *fakeUserRepo) FindDigestRecipients(context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.WeeklyDigestOptIn {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) MarkDigestSent(_ context.Context, id uuid.UUID, at time.Time) error {
	for _, u := range r.users {
		if u.ID == id {
			u.LastDigestSentAt = &at
			return nil
		}
	}
	return domainerror.ErrUserNotFound
}
