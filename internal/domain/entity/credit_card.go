// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditCard represents a revolving credit line owned by a single user.
type CreditCard struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Limit       decimal.Decimal
	Available   decimal.Decimal
	LastUpdated time.Time
	CreatedAt   time.Time
}

// NewCreditCard creates a new CreditCard entity.
func NewCreditCard(userID uuid.UUID, name string, limit, available decimal.Decimal) *CreditCard {
	now := time.Now().UTC()

	return &CreditCard{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Limit:       limit,
		Available:   available,
		LastUpdated: now,
		CreatedAt:   now,
	}
}

// Balance returns the amount currently drawn on the card.
func (c CreditCard) Balance() decimal.Decimal {
	return c.Limit.Sub(c.Available)
}

// Touch refreshes LastUpdated after a mutation.
func (c *CreditCard) Touch() {
	c.LastUpdated = time.Now().UTC()
}
