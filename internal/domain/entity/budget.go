// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetSettings holds the per-user monthly inputs. Every user has exactly one.
type BudgetSettings struct {
	UserID               uuid.UUID
	MonthlyIncome        decimal.Decimal
	SavingsGoal          decimal.Decimal
	SelectedWeeklyTarget *decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewDefaultBudgetSettings returns the zero budget handed to users without one.
func NewDefaultBudgetSettings(userID uuid.UUID) *BudgetSettings {
	now := time.Now().UTC()
	return &BudgetSettings{
		UserID:        userID,
		MonthlyIncome: decimal.Zero,
		SavingsGoal:   decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BudgetSnapshot is the derived financial picture. It is recomputed on demand
// and never persisted as its own record.
type BudgetSnapshot struct {
	MonthlyIncome  decimal.Decimal
	SavingsGoal    decimal.Decimal
	MandatoryBills []Bill
	OptionalBills  []Bill
	CreditCards    []CreditCard

	TotalBills                     decimal.Decimal
	TotalCreditCardSpent           decimal.Decimal
	TotalCreditCardBillsPaidByCard decimal.Decimal
	TotalSpent                     decimal.Decimal

	DiscretionLimit             decimal.Decimal
	DiscretionarySpent          decimal.Decimal
	DiscretionaryLeft           decimal.Decimal
	DiscretionaryLeftPercentage decimal.Decimal

	LastUpdated time.Time
}

// AllBills returns mandatory bills followed by optional bills.
func (s BudgetSnapshot) AllBills() []Bill {
	all := make([]Bill, 0, len(s.MandatoryBills)+len(s.OptionalBills))
	all = append(all, s.MandatoryBills...)
	return append(all, s.OptionalBills...)
}

// IsOverBudget reports whether card spend exceeds the discretionary envelope.
// The clamped fields cannot show this on their own.
func (s BudgetSnapshot) IsOverBudget() bool {
	return s.DiscretionarySpent.GreaterThan(s.DiscretionLimit)
}
