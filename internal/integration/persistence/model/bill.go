package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

// BillModel represents the bills table in the database.
type BillModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_bills_user_due,priority:1"`
	Name             string          `gorm:"type:varchar(255);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate          int             `gorm:"not null;index:idx_bills_user_due,priority:2"`
	Type             string          `gorm:"type:varchar(20);not null;default:'mandatory'"`
	Status           string          `gorm:"type:varchar(20);not null;default:'unpaid'"`
	PaidByCreditCard bool            `gorm:"not null;default:false"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BillModel.
func (BillModel) TableName() string {
	return "bills"
}

// ToEntity converts a BillModel to a domain Bill entity.
// Rows with a missing or unknown type come back as mandatory.
func (m *BillModel) ToEntity() *entity.Bill {
	return &entity.Bill{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		Amount:           m.Amount,
		DueDate:          m.DueDate,
		Type:             entity.BillType(m.Type).Normalize(),
		Status:           entity.BillStatus(m.Status),
		PaidByCreditCard: m.PaidByCreditCard,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// BillFromEntity creates a BillModel from a domain Bill entity.
func BillFromEntity(bill *entity.Bill) *BillModel {
	return &BillModel{
		ID:               bill.ID,
		UserID:           bill.UserID,
		Name:             bill.Name,
		Amount:           bill.Amount,
		DueDate:          bill.DueDate,
		Type:             string(bill.Type),
		Status:           string(bill.Status),
		PaidByCreditCard: bill.PaidByCreditCard,
		CreatedAt:        bill.CreatedAt,
		UpdatedAt:        bill.UpdatedAt,
	}
}
