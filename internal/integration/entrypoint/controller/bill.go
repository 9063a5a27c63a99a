package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibe-budget/backend/internal/application/usecase/bill"
	"github.com/vibe-budget/backend/internal/domain/entity"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
	"github.com/vibe-budget/backend/internal/integration/entrypoint/dto"
)

// BillController handles bill endpoints.
type BillController struct {
	listUseCase    *bill.ListBillsUseCase
	createUseCase  *bill.CreateBillUseCase
	updateUseCase  *bill.UpdateBillUseCase
	setPaidUseCase *bill.SetBillPaidUseCase
	deleteUseCase  *bill.DeleteBillUseCase
}

// NewBillController creates a new bill controller instance.
func NewBillController(
	listUseCase *bill.ListBillsUseCase,
	createUseCase *bill.CreateBillUseCase,
	updateUseCase *bill.UpdateBillUseCase,
	setPaidUseCase *bill.SetBillPaidUseCase,
	deleteUseCase *bill.DeleteBillUseCase,
) *BillController {
	return &BillController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		setPaidUseCase: setPaidUseCase,
		deleteUseCase:  deleteUseCase,
	}
}

// List handles GET /bills requests.
func (c *BillController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), bill.ListBillsInput{UserID: userID})
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	bills := make([]dto.BillResponse, len(output.Bills))
	for i, b := range output.Bills {
		bills[i] = dto.ToBillResponse(*b)
	}
	ctx.JSON(http.StatusOK, dto.BillListResponse{Bills: bills})
}

// Create handles POST /bills requests.
func (c *BillController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateBillRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input := bill.CreateBillInput{
		UserID:           userID,
		Name:             req.Name,
		Amount:           valueobject.MoneyFromFloatPtr(req.Amount),
		DueDate:          req.DueDate,
		Type:             entity.BillType(req.Type),
		PaidByCreditCard: req.PaidByCreditCard,
	}
	if req.Status != nil {
		status := entity.BillStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBillResponse(*output.Bill))
}

// Update handles PATCH /bills/:id requests.
func (c *BillController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	billID, ok := parseIDParam(ctx, "bill")
	if !ok {
		return
	}

	var req dto.UpdateBillRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input := bill.UpdateBillInput{
		BillID:           billID,
		UserID:           userID,
		Name:             req.Name,
		DueDate:          req.DueDate,
		PaidByCreditCard: req.PaidByCreditCard,
		Amount:           optionalMoney(req.Amount),
	}
	if req.Type != nil {
		billType := entity.BillType(*req.Type)
		input.Type = &billType
	}
	if req.Status != nil {
		status := entity.BillStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillResponse(*output.Bill))
}

// Pay handles POST /bills/:id/pay requests.
func (c *BillController) Pay(ctx *gin.Context) {
	c.setPaid(ctx, true)
}

// Unpay handles POST /bills/:id/unpay requests.
func (c *BillController) Unpay(ctx *gin.Context) {
	c.setPaid(ctx, false)
}

func (c *BillController) setPaid(ctx *gin.Context, paid bool) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	billID, ok := parseIDParam(ctx, "bill")
	if !ok {
		return
	}

	output, err := c.setPaidUseCase.Execute(ctx.Request.Context(), bill.SetBillPaidInput{
		BillID: billID,
		UserID: userID,
		Paid:   paid,
	})
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillResponse(*output.Bill))
}

// Delete handles DELETE /bills/:id requests.
func (c *BillController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	billID, ok := parseIDParam(ctx, "bill")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), bill.DeleteBillInput{
		BillID: billID,
		UserID: userID,
	}); err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleBillError handles bill errors and returns appropriate HTTP responses.
func (c *BillController) handleBillError(ctx *gin.Context, err error) {
	var billErr *domainerror.BillError
	if errors.As(err, &billErr) {
		ctx.JSON(getStatusCodeForBillError(billErr.Code), dto.ErrorResponse{
			Error: billErr.Message,
			Code:  string(billErr.Code),
		})
		return
	}

	slog.Error("Unhandled bill error", "error", err)
	internalError(ctx)
}

// getStatusCodeForBillError maps bill error codes to HTTP status codes.
func getStatusCodeForBillError(code domainerror.BillErrorCode) int {
	switch code {
	case domainerror.ErrCodeBillNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotBillOwner:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidDueDate,
		domainerror.ErrCodeInvalidBillAmount,
		domainerror.ErrCodeInvalidBillStatus:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
