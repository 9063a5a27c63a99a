package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

// CreditCardModel represents the credit_cards table in the database.
type CreditCardModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Limit       decimal.Decimal `gorm:"column:credit_limit;type:decimal(15,2);not null"`
	Available   decimal.Decimal `gorm:"column:available_credit;type:decimal(15,2);not null"`
	LastUpdated time.Time       `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the CreditCardModel.
func (CreditCardModel) TableName() string {
	return "credit_cards"
}

// ToEntity converts a CreditCardModel to a domain CreditCard entity.
func (m *CreditCardModel) ToEntity() *entity.CreditCard {
	return &entity.CreditCard{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Limit:       m.Limit,
		Available:   m.Available,
		LastUpdated: m.LastUpdated,
		CreatedAt:   m.CreatedAt,
	}
}

// CreditCardFromEntity creates a CreditCardModel from a domain CreditCard entity.
func CreditCardFromEntity(card *entity.CreditCard) *CreditCardModel {
	return &CreditCardModel{
		ID:          card.ID,
		UserID:      card.UserID,
		Name:        card.Name,
		Limit:       card.Limit,
		Available:   card.Available,
		LastUpdated: card.LastUpdated,
		CreatedAt:   card.CreatedAt,
	}
}
