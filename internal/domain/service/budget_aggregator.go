// Package service holds the pure budget derivation engine: bill status
// resolution, snapshot aggregation and weekly tier generation.
package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// AggregateInput is a consistent snapshot of the four raw input collections.
type AggregateInput struct {
	MonthlyIncome decimal.Decimal
	SavingsGoal   decimal.Decimal
	Bills         []entity.Bill
	Cards         []entity.CreditCard
	Now           time.Time
}

// Aggregate derives a BudgetSnapshot from raw inputs. It has no side effects
// and, apart from LastUpdated, returns identical output for identical input.
// Discretionary figures are clamped at zero.
func Aggregate(input AggregateInput) entity.BudgetSnapshot {
	mandatory := make([]entity.Bill, 0, len(input.Bills))
	optional := make([]entity.Bill, 0, len(input.Bills))

	totalBills := decimal.Zero
	paidByCard := decimal.Zero
	for _, b := range input.Bills {
		b.Type = b.Type.Normalize()
		if b.Type == entity.BillTypeMandatory {
			mandatory = append(mandatory, b)
		} else {
			optional = append(optional, b)
		}

		totalBills = totalBills.Add(b.Amount)
		if b.IsPaid() && b.PaidByCreditCard {
			// already in totalBills, so it must not count as discretionary spend
			paidByCard = paidByCard.Add(b.Amount)
		}
	}

	cards := make([]entity.CreditCard, len(input.Cards))
	copy(cards, input.Cards)
	cardSpent := decimal.Zero
	for _, c := range cards {
		cardSpent = cardSpent.Add(c.Balance())
	}

	limit := valueobject.ClampZero(input.MonthlyIncome.Sub(totalBills).Sub(input.SavingsGoal))
	spent := valueobject.ClampZero(cardSpent.Sub(paidByCard))
	left := valueobject.ClampZero(limit.Sub(spent))

	percentage := decimal.Zero
	if limit.IsPositive() {
		percentage = left.Div(limit).Mul(hundred)
	}

	return entity.BudgetSnapshot{
		MonthlyIncome:                  input.MonthlyIncome,
		SavingsGoal:                    input.SavingsGoal,
		MandatoryBills:                 mandatory,
		OptionalBills:                  optional,
		CreditCards:                    cards,
		TotalBills:                     totalBills,
		TotalCreditCardSpent:           cardSpent,
		TotalCreditCardBillsPaidByCard: paidByCard,
		TotalSpent:                     totalBills.Add(spent),
		DiscretionLimit:                limit,
		DiscretionarySpent:             spent,
		DiscretionaryLeft:              left,
		DiscretionaryLeftPercentage:    percentage,
		LastUpdated:                    input.Now,
	}
}
