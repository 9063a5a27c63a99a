// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vibe-budget/backend/config"
	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/application/usecase/auth"
	"github.com/vibe-budget/backend/internal/application/usecase/bill"
	"github.com/vibe-budget/backend/internal/application/usecase/budget"
	creditcard "github.com/vibe-budget/backend/internal/application/usecase/credit_card"
	infradb "github.com/vibe-budget/backend/internal/infra/db"
	"github.com/vibe-budget/backend/internal/infra/metrics"
	"github.com/vibe-budget/backend/internal/infra/server/router"
	"github.com/vibe-budget/backend/internal/integration/adapters"
	"github.com/vibe-budget/backend/internal/integration/cache"
	"github.com/vibe-budget/backend/internal/integration/email"
	"github.com/vibe-budget/backend/internal/integration/email/templates"
	"github.com/vibe-budget/backend/internal/integration/entrypoint/controller"
	"github.com/vibe-budget/backend/internal/integration/entrypoint/middleware"
	"github.com/vibe-budget/backend/internal/integration/export"
	"github.com/vibe-budget/backend/internal/integration/persistence"
)

// Dependencies are the externally owned resources the application is built on.
// Optional fields left nil get their production implementation from config.
type Dependencies struct {
	DB *gorm.DB
	// Redis backs the snapshot cache. Nil runs without a cache.
	Redis *redis.Client
	// Registry receives the application metrics. Nil creates a fresh one.
	Registry *prometheus.Registry
	// Clock overrides the system clock in the configured timezone.
	Clock adapter.Clock
	// EmailSender overrides the Resend client.
	EmailSender adapter.EmailSender
	// Coach overrides the Gemini coach.
	Coach adapter.BudgetCoach
}

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	Metrics      *metrics.Metrics
	RateLimiter  *middleware.RateLimiter
	DigestWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, deps Dependencies) (*Injector, error) {
	db := deps.DB

	clock := deps.Clock
	if clock == nil {
		loc, err := time.LoadLocation(cfg.Budget.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid budget timezone %q: %w", cfg.Budget.Timezone, err)
		}
		clock = adapters.NewSystemClock(loc)
	}

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	appMetrics := metrics.New(registry)

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	billRepo := persistence.NewBillRepository(db)
	cardRepo := persistence.NewCreditCardRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)

	var snapshotCache adapter.SnapshotCache
	if deps.Redis != nil {
		snapshotCache = cache.NewSnapshotCache(deps.Redis, cfg.Redis.SnapshotCacheTTL)
	}

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.Auth.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenConfig{
		AccessTokenDuration:            cfg.JWT.AccessTokenExpiry,
		RefreshTokenDuration:           cfg.JWT.RefreshTokenExpiry,
		RememberMeAccessTokenDuration:  cfg.JWT.RememberMeAccessExpiry,
		RememberMeRefreshTokenDuration: cfg.JWT.RememberMeRefreshExpiry,
	}, tokenRepo)

	coach := deps.Coach
	if coach == nil {
		coach = adapters.NewGeminiCoach(cfg.Coach.GeminiAPIKey, cfg.Coach.Model)
	}

	mailer, err := newDigestMailer(cfg, deps.EmailSender)
	if err != nil {
		return nil, err
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, budgetRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getProfileUseCase := auth.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := auth.NewUpdateProfileUseCase(userRepo)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, snapshotCache)

	// Create bill use cases
	listBillsUseCase := bill.NewListBillsUseCase(billRepo)
	createBillUseCase := bill.NewCreateBillUseCase(billRepo, snapshotCache, clock)
	updateBillUseCase := bill.NewUpdateBillUseCase(billRepo, snapshotCache, clock)
	setBillPaidUseCase := bill.NewSetBillPaidUseCase(billRepo, snapshotCache)
	deleteBillUseCase := bill.NewDeleteBillUseCase(billRepo, snapshotCache)

	// Create credit card use cases
	listCardsUseCase := creditcard.NewListCreditCardsUseCase(cardRepo)
	createCardUseCase := creditcard.NewCreateCreditCardUseCase(cardRepo, snapshotCache)
	updateCardUseCase := creditcard.NewUpdateCreditCardUseCase(cardRepo, snapshotCache)
	deleteCardUseCase := creditcard.NewDeleteCreditCardUseCase(cardRepo, snapshotCache)

	// Create budget use cases
	loader := budget.NewSessionLoader(budgetRepo, billRepo, cardRepo, clock, appMetrics)
	sendDigestUseCase := budget.NewSendWeeklyDigestUseCase(loader, userRepo, mailer)
	budgetUseCases := controller.BudgetUseCases{
		GetSettings:    budget.NewGetSettingsUseCase(loader),
		UpsertSettings: budget.NewUpsertSettingsUseCase(loader, budgetRepo, snapshotCache),
		GetSnapshot:    budget.NewGetSnapshotUseCase(loader, snapshotCache, appMetrics),
		GetWeeklyTiers: budget.NewGetWeeklyTiersUseCase(loader),
		SelectTier:     budget.NewSelectTierUseCase(loader, budgetRepo),
		Export:         budget.NewExportBudgetUseCase(loader, export.NewXLSXExporter()),
		SendDigest:     sendDigestUseCase,
		GetCoachTip:    budget.NewGetCoachTipUseCase(loader, coach),
	}

	// Create controllers
	var cacheHealthChecker controller.HealthChecker
	if deps.Redis != nil {
		cacheHealthChecker = infradb.RedisHealthCheck(deps.Redis)
	}
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		getProfileUseCase,
		updateProfileUseCase,
		deleteAccountUseCase,
	)

	billController := controller.NewBillController(
		listBillsUseCase,
		createBillUseCase,
		updateBillUseCase,
		setBillPaidUseCase,
		deleteBillUseCase,
	)

	creditCardController := controller.NewCreditCardController(
		listCardsUseCase,
		createCardUseCase,
		updateCardUseCase,
		deleteCardUseCase,
	)

	budgetController := controller.NewBudgetController(budgetUseCases)

	// Create middleware
	authRateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		MaxAttempts: cfg.Auth.RateLimitAttempts,
		Window:      cfg.Auth.RateLimitWindow,
		Disabled:    cfg.Auth.RateLimitDisabled,
	})
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		billController,
		creditCardController,
		budgetController,
		authRateLimiter,
		authMiddleware,
		appMetrics,
	)

	var digestWorker *email.Worker
	if cfg.Email.DigestEnabled && mailer != nil {
		digestWorker = email.NewWorker(userRepo, sendDigestUseCase, clock, email.WorkerConfig{
			Weekday:      cfg.Email.DigestWeekday,
			PollInterval: cfg.Email.DigestPollInterval,
		})
	}

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       r,
		Metrics:      appMetrics,
		RateLimiter:  authRateLimiter,
		DigestWorker: digestWorker,
	}, nil
}

// newDigestMailer returns nil, not a typed nil, when no sender can be built,
// so the digest use case reports the digest as not enabled.
func newDigestMailer(cfg *config.Config, sender adapter.EmailSender) (adapter.DigestMailer, error) {
	if sender == nil {
		if cfg.Email.ResendAPIKey == "" {
			slog.Warn("RESEND_API_KEY not set, weekly digest disabled")
			return nil, nil
		}
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	return email.NewDigestMailer(sender, renderer, cfg.Email.AppBaseURL), nil
}
