package persistence

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
	"github.com/vibe-budget/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.BudgetSettingsModel{},
		&model.BillModel{},
		&model.CreditCardModel{},
	))
	return db
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := entity.NewUser("jo@example.com", "Jo", "hash")
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "JO@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.WeeklyDigestOptIn)

	exists, err := repo.ExistsByEmail(ctx, "jo@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	quiet := entity.NewUser("quiet@example.com", "Quiet", "hash")
	quiet.WeeklyDigestOptIn = false
	require.NoError(t, repo.Create(ctx, quiet))

	recipients, err := repo.FindDigestRecipients(ctx)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, user.ID, recipients[0].ID)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}

func TestUserRepository_DigestOptOutIsStored(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := entity.NewUser("optout@example.com", "Opt Out", "hash")
	user.WeeklyDigestOptIn = false
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, found.WeeklyDigestOptIn)

	found.WeeklyDigestOptIn = true
	require.NoError(t, repo.Update(ctx, found))
	found.WeeklyDigestOptIn = false
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.WeeklyDigestOptIn)
}

func TestUserRepository_MarkDigestSent(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := entity.NewUser("digest@example.com", "Digest", "hash")
	require.NoError(t, repo.Create(ctx, user))

	sentAt := time.Date(2026, time.October, 12, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkDigestSent(ctx, user.ID, sentAt))

	recipients, err := repo.FindDigestRecipients(ctx)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	require.NotNil(t, recipients[0].LastDigestSentAt)
	assert.True(t, recipients[0].LastDigestSentAt.Equal(sentAt))

	err = repo.MarkDigestSent(ctx, uuid.New(), sentAt)
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepository(newTestDB(t))
	userID := uuid.New()

	require.NoError(t, repo.SaveRefreshToken(ctx, "live", userID, time.Now().Add(time.Hour)))
	require.NoError(t, repo.SaveRefreshToken(ctx, "stale", userID, time.Now().Add(-time.Hour)))

	valid, err := repo.IsRefreshTokenValid(ctx, "live")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = repo.IsRefreshTokenValid(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, valid)

	require.NoError(t, repo.InvalidateRefreshToken(ctx, "live"))
	valid, err = repo.IsRefreshTokenValid(ctx, "live")
	require.NoError(t, err)
	assert.False(t, valid)

	valid, err = repo.IsRefreshTokenValid(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestBillRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBillRepository(newTestDB(t))
	userID := uuid.New()

	late := entity.NewBill(userID, "Rent", decimal.RequireFromString("1200.50"), 28, entity.BillTypeMandatory, false)
	early := entity.NewBill(userID, "Spotify", decimal.RequireFromString("11.99"), 3, entity.BillTypeOptional, true)
	other := entity.NewBill(uuid.New(), "Other", decimal.NewFromInt(5), 1, entity.BillTypeMandatory, false)
	for _, b := range []*entity.Bill{late, early, other} {
		require.NoError(t, repo.Create(ctx, b))
	}

	bills, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "Spotify", bills[0].Name)
	assert.Equal(t, entity.BillTypeOptional, bills[0].Type)
	assert.True(t, bills[0].PaidByCreditCard)
	assert.True(t, bills[1].Amount.Equal(decimal.RequireFromString("1200.50")), "amount round-trips, got %s", bills[1].Amount)

	require.NoError(t, repo.MarkPaid(ctx, []uuid.UUID{late.ID}))
	found, err := repo.FindByID(ctx, late.ID)
	require.NoError(t, err)
	assert.True(t, found.IsPaid())

	found.Name = "Rent (new place)"
	found.Status = entity.BillStatusUnpaid
	require.NoError(t, repo.Update(ctx, found))
	found, err = repo.FindByID(ctx, late.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rent (new place)", found.Name)
	assert.False(t, found.IsPaid())

	require.NoError(t, repo.MarkPaid(ctx, nil))

	require.NoError(t, repo.Delete(ctx, early.ID))
	_, err = repo.FindByID(ctx, early.ID)
	assert.ErrorIs(t, err, domainerror.ErrBillNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, early.ID), domainerror.ErrBillNotFound)
}

func TestBillRepository_MissingTypeReadsAsMandatory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBillRepository(db)

	bill := entity.NewBill(uuid.New(), "Legacy", decimal.NewFromInt(10), 5, entity.BillTypeMandatory, false)
	require.NoError(t, repo.Create(ctx, bill))
	require.NoError(t, db.Model(&model.BillModel{}).Where("id = ?", bill.ID).Update("type", "").Error)

	found, err := repo.FindByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BillTypeMandatory, found.Type)
}

func TestCreditCardRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCreditCardRepository(newTestDB(t))
	userID := uuid.New()

	older := entity.NewCreditCard(userID, "Visa", decimal.NewFromInt(1000), decimal.NewFromInt(250))
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := entity.NewCreditCard(userID, "Amex", decimal.NewFromInt(5000), decimal.NewFromInt(5000))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	cards, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Amex", cards[0].Name)
	assert.True(t, cards[1].Balance().Equal(decimal.NewFromInt(750)))

	older.Available = decimal.NewFromInt(900)
	require.NoError(t, repo.Update(ctx, older))
	found, err := repo.FindByID(ctx, older.ID)
	require.NoError(t, err)
	assert.True(t, found.Available.Equal(decimal.NewFromInt(900)))

	require.NoError(t, repo.Delete(ctx, older.ID))
	_, err = repo.FindByID(ctx, older.ID)
	assert.ErrorIs(t, err, domainerror.ErrCreditCardNotFound)
}

func TestBudgetRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository(newTestDB(t))
	userID := uuid.New()

	_, err := repo.FindByUserID(ctx, userID)
	assert.ErrorIs(t, err, domainerror.ErrBudgetSettingsNotFound)

	settings := entity.NewDefaultBudgetSettings(userID)
	require.NoError(t, repo.Upsert(ctx, settings))

	found, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, found.MonthlyIncome.IsZero())
	assert.Nil(t, found.SelectedWeeklyTarget)

	target := decimal.NewFromInt(150)
	settings.MonthlyIncome = decimal.NewFromInt(3200)
	settings.SavingsGoal = decimal.NewFromInt(400)
	settings.SelectedWeeklyTarget = &target
	require.NoError(t, repo.Upsert(ctx, settings))

	found, err = repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, found.MonthlyIncome.Equal(decimal.NewFromInt(3200)))
	assert.True(t, found.SavingsGoal.Equal(decimal.NewFromInt(400)))
	require.NotNil(t, found.SelectedWeeklyTarget)
	assert.True(t, found.SelectedWeeklyTarget.Equal(target))

	settings.SelectedWeeklyTarget = nil
	require.NoError(t, repo.Upsert(ctx, settings))
	found, err = repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, found.SelectedWeeklyTarget)
}
