package adapters

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

type memoryTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{tokens: map[string]time.Time{}}
}

func (r *memoryTokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = expiresAt
	return nil
}

func (r *memoryTokenRepository) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.tokens[token]
	return ok && exp.After(time.Now()), nil
}

func (r *memoryTokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("round trips a pair", func(t *testing.T) {
		repo := newMemoryTokenRepository()
		svc := NewTokenService("secret", DefaultTokenConfig(), repo)

		pair, err := svc.GenerateTokenPair(ctx, userID, "jo@example.com", false)
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "jo@example.com", claims.Email)

		claims, err = svc.ValidateRefreshToken(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)

		valid, err := svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.True(t, valid)

		require.NoError(t, svc.InvalidateRefreshToken(ctx, pair.RefreshToken))
		valid, err = svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("rejects the wrong token type", func(t *testing.T) {
		svc := NewTokenService("secret", DefaultTokenConfig(), newMemoryTokenRepository())
		pair, err := svc.GenerateTokenPair(ctx, userID, "jo@example.com", false)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
		_, err = svc.ValidateRefreshToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		issuer := NewTokenService("one", DefaultTokenConfig(), newMemoryTokenRepository())
		verifier := NewTokenService("two", DefaultTokenConfig(), newMemoryTokenRepository())

		pair, err := issuer.GenerateTokenPair(ctx, userID, "jo@example.com", false)
		require.NoError(t, err)
		_, err = verifier.ValidateAccessToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("reports expiry separately", func(t *testing.T) {
		config := DefaultTokenConfig()
		config.AccessTokenDuration = -time.Minute
		svc := NewTokenService("secret", config, newMemoryTokenRepository())

		pair, err := svc.GenerateTokenPair(ctx, userID, "jo@example.com", false)
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, domainerror.ErrExpiredToken)
	})

	t.Run("remember me extends the access token", func(t *testing.T) {
		svc := NewTokenService("secret", DefaultTokenConfig(), newMemoryTokenRepository())
		pair, err := svc.GenerateTokenPair(ctx, userID, "jo@example.com", true)
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.True(t, claims.ExpiresAt.After(time.Now().Add(24*time.Hour)))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		svc := NewTokenService("secret", DefaultTokenConfig(), newMemoryTokenRepository())
		_, err := svc.ValidateAccessToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NoError(t, svc.VerifyPassword(hash, "correct horse"))
	assert.Error(t, svc.VerifyPassword(hash, "wrong horse"))

	assert.ErrorIs(t, svc.ValidatePasswordStrength("short"), domainerror.ErrWeakPassword)
	assert.ErrorIs(t, svc.ValidatePasswordStrength(strings.Repeat("a", 73)), domainerror.ErrWeakPassword)
	assert.NoError(t, svc.ValidatePasswordStrength("eightchr"))
}

func TestSystemClock(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	assert.Equal(t, loc, NewSystemClock(loc).Now().Location())
	assert.Equal(t, time.UTC, NewSystemClock(nil).Now().Location())
}

func TestGeminiCoach(t *testing.T) {
	t.Run("unavailable without a key", func(t *testing.T) {
		coach := NewGeminiCoach("", "")
		assert.False(t, coach.IsAvailable())
		assert.Equal(t, DefaultGeminiModel, coach.modelName)

		_, err := coach.Tip(context.Background(), adapter.CoachRequest{})
		assert.Error(t, err)
	})

	t.Run("prompt carries the recommendation", func(t *testing.T) {
		best := entity.WeeklyTier{Label: "Soft Flex Zone", Value: decimal.NewFromInt(200), DailyRemaining: decimal.NewFromInt(20)}
		prompt := buildCoachPrompt(adapter.CoachRequest{
			Snapshot: entity.BudgetSnapshot{
				MonthlyIncome:      decimal.NewFromInt(3000),
				DiscretionLimit:    decimal.NewFromInt(1000),
				DiscretionarySpent: decimal.NewFromInt(1100),
			},
			Tiers: []entity.WeeklyTier{
				{Label: "Main Character Money", Value: decimal.NewFromInt(250), OverBudget: true},
				best,
			},
			BestTier: best,
		})

		assert.Contains(t, prompt, "Monthly income: $3000.00")
		assert.Contains(t, prompt, "Main Character Money: $250.00 per week (does not fit)")
		assert.Contains(t, prompt, "RECOMMENDED: Soft Flex Zone at $200.00 per week")
		assert.Contains(t, prompt, "OVER their fun money")
	})

	t.Run("parses and tidies the response text", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{
					genai.Text("  Skip the second brunch\n this week. "),
					genai.Text("Future you says thanks."),
				}},
			}},
		}
		tip, err := parseCoachResponse(resp)
		require.NoError(t, err)
		assert.Equal(t, "Skip the second brunch this week. Future you says thanks.", tip)

		_, err = parseCoachResponse(&genai.GenerateContentResponse{})
		assert.Error(t, err)
	})
}
