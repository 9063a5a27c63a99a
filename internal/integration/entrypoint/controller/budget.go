package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibe-budget/backend/internal/application/usecase/budget"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
	"github.com/vibe-budget/backend/internal/integration/entrypoint/dto"
)

// BudgetUseCases groups the use cases behind the budget endpoints.
type BudgetUseCases struct {
	GetSettings    *budget.GetSettingsUseCase
	UpsertSettings *budget.UpsertSettingsUseCase
	GetSnapshot    *budget.GetSnapshotUseCase
	GetWeeklyTiers *budget.GetWeeklyTiersUseCase
	SelectTier     *budget.SelectTierUseCase
	Export         *budget.ExportBudgetUseCase
	SendDigest     *budget.SendWeeklyDigestUseCase
	GetCoachTip    *budget.GetCoachTipUseCase
}

// BudgetController handles settings, snapshot, tier and report endpoints.
type BudgetController struct {
	useCases BudgetUseCases
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(useCases BudgetUseCases) *BudgetController {
	return &BudgetController{useCases: useCases}
}

// GetSettings handles GET /budget/settings requests.
func (c *BudgetController) GetSettings(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.useCases.GetSettings.Execute(ctx.Request.Context(), budget.GetSettingsInput{UserID: userID})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetSettingsResponse(output.Settings))
}

// PutSettings handles PUT /budget/settings requests.
func (c *BudgetController) PutSettings(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.BudgetSettingsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.useCases.UpsertSettings.Execute(ctx.Request.Context(), budget.UpsertSettingsInput{
		UserID:        userID,
		MonthlyIncome: valueobject.MoneyFromFloatPtr(req.MonthlyIncome),
		SavingsGoal:   valueobject.MoneyFromFloatPtr(req.SavingsGoal),
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetSettingsResponse(output.Settings))
}

// Snapshot handles GET /budget/snapshot requests.
func (c *BudgetController) Snapshot(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.useCases.GetSnapshot.Execute(ctx.Request.Context(), budget.GetSnapshotInput{UserID: userID})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSnapshotResponse(output.Snapshot, output.FromCache))
}

// Tiers handles GET /budget/tiers requests.
func (c *BudgetController) Tiers(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.useCases.GetWeeklyTiers.Execute(ctx.Request.Context(), budget.GetWeeklyTiersInput{UserID: userID})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTiersResponse(output.Tiers, output.BestTier, output.SelectedWeeklyTarget, output.Snapshot))
}

// SelectTier handles PUT /budget/tiers/selection requests.
func (c *BudgetController) SelectTier(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.SelectTierRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.useCases.SelectTier.Execute(ctx.Request.Context(), budget.SelectTierInput{
		UserID: userID,
		Value:  optionalMoney(req.Value),
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTiersResponse(output.Tiers, output.BestTier, output.SelectedWeeklyTarget, output.Snapshot))
}

// Export handles GET /budget/export requests.
func (c *BudgetController) Export(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.useCases.Export.Execute(ctx.Request.Context(), budget.ExportBudgetInput{UserID: userID})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, output.Filename))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// SendDigest handles POST /budget/digest requests.
func (c *BudgetController) SendDigest(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.useCases.SendDigest.Execute(ctx.Request.Context(), budget.SendWeeklyDigestInput{UserID: userID})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.DigestResponse{
		SentTo:    output.SentTo,
		MessageID: output.MessageID,
	})
}

// CoachTip handles GET /budget/coach requests.
func (c *BudgetController) CoachTip(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.useCases.GetCoachTip.Execute(ctx.Request.Context(), budget.GetCoachTipInput{UserID: userID})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CoachTipResponse{
		Tip:      output.Tip,
		BestTier: dto.ToTierResponse(output.BestTier),
	})
}

// handleBudgetError handles budget and email errors and returns appropriate HTTP responses.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		status := getStatusCodeForBudgetError(budgetErr.Code)
		if status >= http.StatusInternalServerError {
			slog.Error("Budget request failed", "code", budgetErr.Code, "error", err)
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	var emailErr *domainerror.EmailError
	if errors.As(err, &emailErr) {
		status := getStatusCodeForEmailError(emailErr.Code)
		if status >= http.StatusInternalServerError {
			slog.Error("Digest send failed", "code", emailErr.Code, "error", err)
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: emailErr.Message,
			Code:  string(emailErr.Code),
		})
		return
	}

	slog.Error("Unhandled budget error", "error", err)
	internalError(ctx)
}

// getStatusCodeForBudgetError maps budget error codes to HTTP status codes.
func getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidBudgetSettings,
		domainerror.ErrCodeInvalidTierSelection:
		return http.StatusBadRequest
	case domainerror.ErrCodeSnapshotUnavailable,
		domainerror.ErrCodeCoachNotConfigured:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeCoachFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForEmailError maps email error codes to HTTP status codes.
func getStatusCodeForEmailError(code domainerror.EmailErrorCode) int {
	switch code {
	case domainerror.ErrCodeDigestNotEnabled:
		return http.StatusConflict
	case domainerror.ErrCodeEmailSendFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
