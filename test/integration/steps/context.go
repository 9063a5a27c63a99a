// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/vibe-budget/backend/config"
	"github.com/vibe-budget/backend/internal/infra/dependency"
	"github.com/vibe-budget/backend/internal/integration/email"
	"github.com/vibe-budget/backend/internal/integration/persistence/model"
	"github.com/vibe-budget/backend/test/integration/mock"
)

const (
	testJWTSecret  = "test-jwt-secret-key-for-testing-purposes"
	testPassword   = "SecurePass123!"
	resendEmailsAt = "/emails"
)

// testContext holds the state of one scenario.
type testContext struct {
	server   *httptest.Server
	client   *http.Client
	db       *mock.Db
	redis    *mock.Redis
	resend   *mock.ApiMock
	timeMock *mock.Time

	headers      map[string]string
	accessToken  string
	refreshToken string
	ids          map[string]string
	lastID       string
	response     *response
}

type response struct {
	status  int
	headers http.Header
	body    any
}

var resendMock *mock.ApiMock

// InitializeTestSuite starts the resources shared by every scenario.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		resendMock = mock.NewApiServer()
		resendMock.Start()
	})

	ctx.AfterSuite(func() {
		if resendMock != nil {
			resendMock.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: mock.NewTime(),
		redis:    mock.NewRedis(),
		db: mock.NewDb("vibe_budget", map[string]any{
			"users":           &model.UserModel{},
			"refresh_tokens":  &model.RefreshTokenModel{},
			"budget_settings": &model.BudgetSettingsModel{},
			"bills":           &model.BillModel{},
			"credit_cards":    &model.CreditCardModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
			test.server = nil
		}
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)

	// User steps
	ctx.Given(`^I am registered as "([^"]*)"$`, test.iAmRegisteredAs)
	ctx.Given(`^I am registered as "([^"]*)" without the weekly digest$`, test.iAmRegisteredAsWithoutTheWeeklyDigest)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^I am not authenticated$`, test.iAmNotAuthenticated)

	// Budget data steps
	ctx.Given(`^my monthly income is "([^"]*)" and my savings goal is "([^"]*)"$`, test.myMonthlyIncomeAndSavingsGoal)
	ctx.Given(`^I have a (mandatory|optional) bill "([^"]*)" of "([^"]*)" due on day (\d+)$`, test.iHaveABill)
	ctx.Given(`^I have a credit card "([^"]*)" with limit "([^"]*)" and "([^"]*)" available$`, test.iHaveACreditCard)
	ctx.Given(`^the email provider rejects messages$`, test.theEmailProviderRejectsMessages)

	// Header steps
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I remember the response id as "([^"]*)"$`, test.iRememberTheResponseIDAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Side effect assertion steps
	ctx.Then(`^the snapshot cache should hold (\d+) entr(?:y|ies)$`, test.theSnapshotCacheShouldHoldEntries)
	ctx.Then(`^(\d+) emails? should have been sent to "([^"]*)"$`, test.emailsShouldHaveBeenSentTo)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.ids = make(map[string]string)
	t.lastID = ""
	t.response = nil
	t.timeMock.SetCurrentTime(time.Now().UTC())

	t.resend = resendMock
	t.resend.Reset()
	t.redis.Clear()
	return t.db.ClearDB()
}

// startServer wires the application against the mocks. Each scenario gets a
// fresh injector so metrics and rate limits do not leak between scenarios.
func (t *testContext) startServer() error {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Auth.BcryptCost = 4
	cfg.Auth.RateLimitDisabled = true
	cfg.Budget.Timezone = "UTC"
	cfg.Email.DigestEnabled = false
	cfg.Coach.GeminiAPIKey = ""

	sender := email.NewResendClient("re_test_key", cfg.Email.FromName, cfg.Email.FromEmail)
	if err := sender.SetBaseURL(t.resend.GetUrl()); err != nil {
		return err
	}

	inj, err := dependency.NewInjector(cfg, dependency.Dependencies{
		DB:          t.db.DbConn,
		Redis:       t.redis.Client,
		Clock:       t.timeMock,
		EmailSender: sender,
	})
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	t.server = httptest.NewServer(inj.Router.Setup(cfg.Server.Environment))
	return nil
}
