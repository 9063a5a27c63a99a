// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/vibe-budget/backend/internal/infra/metrics"
	"github.com/vibe-budget/backend/internal/integration/entrypoint/controller"
	"github.com/vibe-budget/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	userController       *controller.UserController
	billController       *controller.BillController
	creditCardController *controller.CreditCardController
	budgetController     *controller.BudgetController
	authRateLimiter      *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
	metrics              *metrics.Metrics
}

// NewRouter creates a new router instance with all dependencies.
// A nil metrics value disables request instrumentation and the /metrics route.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	billController *controller.BillController,
	creditCardController *controller.CreditCardController,
	budgetController *controller.BudgetController,
	authRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	m *metrics.Metrics,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		userController:       userController,
		billController:       billController,
		creditCardController: creditCardController,
		budgetController:     budgetController,
		authRateLimiter:      authRateLimiter,
		authMiddleware:       authMiddleware,
		metrics:              m,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()
	if r.metrics != nil {
		r.engine.Use(r.metrics.Instrument())
	}

	r.setupOperationalRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupOperationalRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	if r.authRateLimiter != nil {
		auth.Use(r.authRateLimiter.Middleware())
	}
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.authController.Login)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authController.Logout)
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	users := protected.Group("/users")
	{
		users.GET("/me", r.userController.GetProfile)
		users.PATCH("/me", r.userController.UpdateProfile)
		users.DELETE("/me", r.userController.DeleteAccount)
	}

	bills := protected.Group("/bills")
	{
		bills.GET("", r.billController.List)
		bills.POST("", r.billController.Create)
		bills.PATCH("/:id", r.billController.Update)
		bills.DELETE("/:id", r.billController.Delete)
		bills.POST("/:id/pay", r.billController.Pay)
		bills.POST("/:id/unpay", r.billController.Unpay)
	}

	cards := protected.Group("/credit-cards")
	{
		cards.GET("", r.creditCardController.List)
		cards.POST("", r.creditCardController.Create)
		cards.PATCH("/:id", r.creditCardController.Update)
		cards.DELETE("/:id", r.creditCardController.Delete)
	}

	budget := protected.Group("/budget")
	{
		budget.GET("/settings", r.budgetController.GetSettings)
		budget.PUT("/settings", r.budgetController.PutSettings)
		budget.GET("/snapshot", r.budgetController.Snapshot)
		budget.GET("/tiers", r.budgetController.Tiers)
		budget.PUT("/tiers/selection", r.budgetController.SelectTier)
		budget.GET("/export", r.budgetController.Export)
		budget.POST("/digest", r.budgetController.SendDigest)
		budget.GET("/coach", r.budgetController.CoachTip)
	}
}
