package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

// BudgetSettingsModel represents the budget_settings table, one row per user.
type BudgetSettingsModel struct {
	UserID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	MonthlyIncome        decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0"`
	SavingsGoal          decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0"`
	SelectedWeeklyTarget decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	CreatedAt            time.Time           `gorm:"not null"`
	UpdatedAt            time.Time           `gorm:"not null"`
}

// TableName returns the table name for the BudgetSettingsModel.
func (BudgetSettingsModel) TableName() string {
	return "budget_settings"
}

// ToEntity converts a BudgetSettingsModel to a domain BudgetSettings entity.
func (m *BudgetSettingsModel) ToEntity() *entity.BudgetSettings {
	var selected *decimal.Decimal
	if m.SelectedWeeklyTarget.Valid {
		value := m.SelectedWeeklyTarget.Decimal
		selected = &value
	}

	return &entity.BudgetSettings{
		UserID:               m.UserID,
		MonthlyIncome:        m.MonthlyIncome,
		SavingsGoal:          m.SavingsGoal,
		SelectedWeeklyTarget: selected,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// BudgetSettingsFromEntity creates a BudgetSettingsModel from a domain BudgetSettings entity.
func BudgetSettingsFromEntity(settings *entity.BudgetSettings) *BudgetSettingsModel {
	var selected decimal.NullDecimal
	if settings.SelectedWeeklyTarget != nil {
		selected = decimal.NewNullDecimal(*settings.SelectedWeeklyTarget)
	}

	return &BudgetSettingsModel{
		UserID:               settings.UserID,
		MonthlyIncome:        settings.MonthlyIncome,
		SavingsGoal:          settings.SavingsGoal,
		SelectedWeeklyTarget: selected,
		CreatedAt:            settings.CreatedAt,
		UpdatedAt:            settings.UpdatedAt,
	}
}
