package dto

import (
	"time"

	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
)

// CreateBillRequest represents the request body for creating a bill.
type CreateBillRequest struct {
	Name             string   `json:"name" binding:"max=100"`
	Amount           *float64 `json:"amount" binding:"required"`
	DueDate          int      `json:"due_date"`
	Type             string   `json:"type"`
	Status           *string  `json:"status"`
	PaidByCreditCard bool     `json:"paid_by_credit_card"`
}

// UpdateBillRequest represents the request body for a partial bill update.
type UpdateBillRequest struct {
	Name             *string  `json:"name" binding:"omitempty,max=100"`
	Amount           *float64 `json:"amount"`
	DueDate          *int     `json:"due_date"`
	Type             *string  `json:"type"`
	Status           *string  `json:"status"`
	PaidByCreditCard *bool    `json:"paid_by_credit_card"`
}

// BillResponse represents a bill in API responses.
type BillResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Amount           string    `json:"amount"`
	DueDate          int       `json:"due_date"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	IsPaid           bool      `json:"is_paid"`
	PaidByCreditCard bool      `json:"paid_by_credit_card"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BillListResponse represents the response for listing bills.
type BillListResponse struct {
	Bills []BillResponse `json:"bills"`
}

// ToBillResponse converts a domain Bill entity to a BillResponse DTO.
func ToBillResponse(bill entity.Bill) BillResponse {
	return BillResponse{
		ID:               bill.ID.String(),
		Name:             bill.Name,
		Amount:           valueobject.FormatMoney(bill.Amount),
		DueDate:          bill.DueDate,
		Type:             string(bill.Type),
		Status:           string(bill.Status),
		IsPaid:           bill.IsPaid(),
		PaidByCreditCard: bill.PaidByCreditCard,
		CreatedAt:        bill.CreatedAt,
		UpdatedAt:        bill.UpdatedAt,
	}
}

// ToBillResponses converts a list of bills.
func ToBillResponses(bills []entity.Bill) []BillResponse {
	out := make([]BillResponse, len(bills))
	for i, b := range bills {
		out[i] = ToBillResponse(b)
	}
	return out
}
