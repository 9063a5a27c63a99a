package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	creditcard "github.com/vibe-budget/backend/internal/application/usecase/credit_card"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
	"github.com/vibe-budget/backend/internal/integration/entrypoint/dto"
)

// CreditCardController handles credit card endpoints.
type CreditCardController struct {
	listUseCase   *creditcard.ListCreditCardsUseCase
	createUseCase *creditcard.CreateCreditCardUseCase
	updateUseCase *creditcard.UpdateCreditCardUseCase
	deleteUseCase *creditcard.DeleteCreditCardUseCase
}

// NewCreditCardController creates a new credit card controller instance.
func NewCreditCardController(
	listUseCase *creditcard.ListCreditCardsUseCase,
	createUseCase *creditcard.CreateCreditCardUseCase,
	updateUseCase *creditcard.UpdateCreditCardUseCase,
	deleteUseCase *creditcard.DeleteCreditCardUseCase,
) *CreditCardController {
	return &CreditCardController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /credit-cards requests.
func (c *CreditCardController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), creditcard.ListCreditCardsInput{UserID: userID})
	if err != nil {
		c.handleCreditCardError(ctx, err)
		return
	}

	cards := make([]dto.CreditCardResponse, len(output.CreditCards))
	for i, card := range output.CreditCards {
		cards[i] = dto.ToCreditCardResponse(*card)
	}
	ctx.JSON(http.StatusOK, dto.CreditCardListResponse{CreditCards: cards})
}

// Create handles POST /credit-cards requests.
func (c *CreditCardController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCreditCardRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), creditcard.CreateCreditCardInput{
		UserID:    userID,
		Name:      req.Name,
		Limit:     valueobject.MoneyFromFloatPtr(req.Limit),
		Available: valueobject.MoneyFromFloatPtr(req.Available),
	})
	if err != nil {
		c.handleCreditCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCreditCardResponse(*output.CreditCard))
}

// Update handles PATCH /credit-cards/:id requests.
func (c *CreditCardController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	cardID, ok := parseIDParam(ctx, "credit card")
	if !ok {
		return
	}

	var req dto.UpdateCreditCardRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), creditcard.UpdateCreditCardInput{
		CardID:    cardID,
		UserID:    userID,
		Name:      req.Name,
		Limit:     optionalMoney(req.Limit),
		Available: optionalMoney(req.Available),
	})
	if err != nil {
		c.handleCreditCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCreditCardResponse(*output.CreditCard))
}

// Delete handles DELETE /credit-cards/:id requests.
func (c *CreditCardController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	cardID, ok := parseIDParam(ctx, "credit card")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), creditcard.DeleteCreditCardInput{
		CardID: cardID,
		UserID: userID,
	}); err != nil {
		c.handleCreditCardError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleCreditCardError handles credit card errors and returns appropriate HTTP responses.
func (c *CreditCardController) handleCreditCardError(ctx *gin.Context, err error) {
	var cardErr *domainerror.CreditCardError
	if errors.As(err, &cardErr) {
		ctx.JSON(getStatusCodeForCreditCardError(cardErr.Code), dto.ErrorResponse{
			Error: cardErr.Message,
			Code:  string(cardErr.Code),
		})
		return
	}

	slog.Error("Unhandled credit card error", "error", err)
	internalError(ctx)
}

// getStatusCodeForCreditCardError maps credit card error codes to HTTP status codes.
func getStatusCodeForCreditCardError(code domainerror.CreditCardErrorCode) int {
	switch code {
	case domainerror.ErrCodeCreditCardNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotCardOwner:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidCardAmounts,
		domainerror.ErrCodeMissingCardName:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
