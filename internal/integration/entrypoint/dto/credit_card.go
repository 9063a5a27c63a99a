package dto

import (
	"time"

	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
)

// CreateCreditCardRequest represents the request body for adding a card.
type CreateCreditCardRequest struct {
	Name      string   `json:"name" binding:"max=100"`
	Limit     *float64 `json:"limit" binding:"required"`
	Available *float64 `json:"available" binding:"required"`
}

// UpdateCreditCardRequest represents the request body for a partial card update.
type UpdateCreditCardRequest struct {
	Name      *string  `json:"name" binding:"omitempty,max=100"`
	Limit     *float64 `json:"limit"`
	Available *float64 `json:"available"`
}

// CreditCardResponse represents a card in API responses.
type CreditCardResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Limit       string    `json:"limit"`
	Available   string    `json:"available"`
	Balance     string    `json:"balance"`
	LastUpdated time.Time `json:"last_updated"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreditCardListResponse represents the response for listing cards.
type CreditCardListResponse struct {
	CreditCards []CreditCardResponse `json:"credit_cards"`
}

// ToCreditCardResponse converts a domain CreditCard entity to a CreditCardResponse DTO.
func ToCreditCardResponse(card entity.CreditCard) CreditCardResponse {
	return CreditCardResponse{
		ID:          card.ID.String(),
		Name:        card.Name,
		Limit:       valueobject.FormatMoney(card.Limit),
		Available:   valueobject.FormatMoney(card.Available),
		Balance:     valueobject.FormatMoney(card.Balance()),
		LastUpdated: card.LastUpdated,
		CreatedAt:   card.CreatedAt,
	}
}

// ToCreditCardResponses converts a list of cards.
func ToCreditCardResponses(cards []entity.CreditCard) []CreditCardResponse {
	out := make([]CreditCardResponse, len(cards))
	for i, c := range cards {
		out[i] = ToCreditCardResponse(c)
	}
	return out
}
