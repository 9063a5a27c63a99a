package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bill(amount string, billType entity.BillType, status entity.BillStatus, byCard bool) entity.Bill {
	return entity.Bill{
		ID:               uuid.New(),
		Name:             "bill",
		Amount:           dec(amount),
		DueDate:          15,
		Type:             billType,
		Status:           status,
		PaidByCreditCard: byCard,
	}
}

func card(limit, available string) entity.CreditCard {
	return entity.CreditCard{
		ID:        uuid.New(),
		Name:      "card",
		Limit:     dec(limit),
		Available: dec(available),
	}
}

func assertDecimal(t *testing.T, field string, want string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: expected %s, got %s", field, want, got.String())
	}
}

func TestAggregate_ZeroState(t *testing.T) {
	snapshot := Aggregate(AggregateInput{Now: time.Now()})

	assertDecimal(t, "DiscretionLimit", "0", snapshot.DiscretionLimit)
	assertDecimal(t, "DiscretionarySpent", "0", snapshot.DiscretionarySpent)
	assertDecimal(t, "DiscretionaryLeft", "0", snapshot.DiscretionaryLeft)
	assertDecimal(t, "DiscretionaryLeftPercentage", "0", snapshot.DiscretionaryLeftPercentage)
	assertDecimal(t, "TotalSpent", "0", snapshot.TotalSpent)

	if len(snapshot.MandatoryBills) != 0 || len(snapshot.OptionalBills) != 0 || len(snapshot.CreditCards) != 0 {
		t.Error("expected empty collections")
	}
}

func TestAggregate_SimpleMonth(t *testing.T) {
	snapshot := Aggregate(AggregateInput{
		MonthlyIncome: dec("3000"),
		SavingsGoal:   dec("500"),
		Bills: []entity.Bill{
			bill("1000", entity.BillTypeMandatory, entity.BillStatusUnpaid, false),
			bill("200", entity.BillTypeMandatory, entity.BillStatusPaid, false),
			bill("300", entity.BillTypeOptional, entity.BillStatusUnpaid, false),
		},
		Now: time.Now(),
	})

	assertDecimal(t, "TotalBills", "1500", snapshot.TotalBills)
	assertDecimal(t, "DiscretionLimit", "1000", snapshot.DiscretionLimit)
	assertDecimal(t, "DiscretionarySpent", "0", snapshot.DiscretionarySpent)
	assertDecimal(t, "DiscretionaryLeft", "1000", snapshot.DiscretionaryLeft)
	assertDecimal(t, "DiscretionaryLeftPercentage", "100", snapshot.DiscretionaryLeftPercentage)
	assertDecimal(t, "TotalSpent", "1500", snapshot.TotalSpent)

	if len(snapshot.MandatoryBills) != 2 {
		t.Errorf("expected 2 mandatory bills, got %d", len(snapshot.MandatoryBills))
	}
	if len(snapshot.OptionalBills) != 1 {
		t.Errorf("expected 1 optional bill, got %d", len(snapshot.OptionalBills))
	}
}

func TestAggregate_CreditCardSpend(t *testing.T) {
	t.Run("bills paid by card are not double counted", func(t *testing.T) {
		snapshot := Aggregate(AggregateInput{
			MonthlyIncome: dec("5000"),
			Bills: []entity.Bill{
				bill("150", entity.BillTypeMandatory, entity.BillStatusPaid, true),
				bill("50", entity.BillTypeOptional, entity.BillStatusPaid, true),
				bill("75", entity.BillTypeOptional, entity.BillStatusUnpaid, true),
				bill("400", entity.BillTypeMandatory, entity.BillStatusPaid, false),
			},
			Cards: []entity.CreditCard{
				card("1000", "500"),
				card("2000", "1700"),
			},
			Now: time.Now(),
		})

		assertDecimal(t, "TotalCreditCardSpent", "800", snapshot.TotalCreditCardSpent)
		assertDecimal(t, "TotalCreditCardBillsPaidByCard", "200", snapshot.TotalCreditCardBillsPaidByCard)
		assertDecimal(t, "DiscretionarySpent", "600", snapshot.DiscretionarySpent)
	})

	t.Run("card bills exceeding balance clamp spent to zero", func(t *testing.T) {
		snapshot := Aggregate(AggregateInput{
			MonthlyIncome: dec("1000"),
			Bills: []entity.Bill{
				bill("300", entity.BillTypeMandatory, entity.BillStatusPaid, true),
			},
			Cards: []entity.CreditCard{card("500", "400")},
			Now:   time.Now(),
		})

		assertDecimal(t, "DiscretionarySpent", "0", snapshot.DiscretionarySpent)
		assertDecimal(t, "DiscretionaryLeft", "700", snapshot.DiscretionaryLeft)
	})

	t.Run("overspending clamps left to zero", func(t *testing.T) {
		snapshot := Aggregate(AggregateInput{
			MonthlyIncome: dec("1000"),
			SavingsGoal:   dec("200"),
			Cards:         []entity.CreditCard{card("3000", "1000")},
			Now:           time.Now(),
		})

		assertDecimal(t, "DiscretionLimit", "800", snapshot.DiscretionLimit)
		assertDecimal(t, "DiscretionarySpent", "2000", snapshot.DiscretionarySpent)
		assertDecimal(t, "DiscretionaryLeft", "0", snapshot.DiscretionaryLeft)
		assertDecimal(t, "DiscretionaryLeftPercentage", "0", snapshot.DiscretionaryLeftPercentage)
		if !snapshot.IsOverBudget() {
			t.Error("expected snapshot to report over budget")
		}
	})
}

func TestAggregate_MissingTypeDefaultsToMandatory(t *testing.T) {
	snapshot := Aggregate(AggregateInput{
		MonthlyIncome: dec("100"),
		Bills:         []entity.Bill{bill("10", "", entity.BillStatusUnpaid, false)},
		Now:           time.Now(),
	})

	if len(snapshot.MandatoryBills) != 1 || len(snapshot.OptionalBills) != 0 {
		t.Fatalf("expected bill without type in mandatory bucket")
	}
	if snapshot.MandatoryBills[0].Type != entity.BillTypeMandatory {
		t.Errorf("expected normalized type, got %q", snapshot.MandatoryBills[0].Type)
	}
}

func TestAggregate_Invariants(t *testing.T) {
	cases := []AggregateInput{
		{MonthlyIncome: dec("0"), SavingsGoal: dec("500")},
		{MonthlyIncome: dec("100"), Bills: []entity.Bill{bill("5000", entity.BillTypeMandatory, entity.BillStatusUnpaid, false)}},
		{MonthlyIncome: dec("2500.55"), SavingsGoal: dec("100.10"), Cards: []entity.CreditCard{card("900.33", "12.01")}},
		{MonthlyIncome: dec("-300"), Cards: []entity.CreditCard{card("100", "300")}},
		{MonthlyIncome: dec("4000"), Bills: []entity.Bill{bill("-50", entity.BillTypeOptional, entity.BillStatusPaid, true)}},
		{
			MonthlyIncome: dec("3210.99"),
			SavingsGoal:   dec("321"),
			Bills: []entity.Bill{
				bill("45.67", entity.BillTypeOptional, entity.BillStatusPaid, true),
				bill("1200", entity.BillTypeMandatory, entity.BillStatusUnpaid, false),
			},
			Cards: []entity.CreditCard{card("1500", "1100.50"), card("800", "799.99")},
		},
	}

	for i, input := range cases {
		s := Aggregate(input)

		if s.DiscretionLimit.IsNegative() || s.DiscretionarySpent.IsNegative() || s.DiscretionaryLeft.IsNegative() {
			t.Errorf("case %d: negative discretionary field: limit=%s spent=%s left=%s",
				i, s.DiscretionLimit, s.DiscretionarySpent, s.DiscretionaryLeft)
		}

		if !s.TotalSpent.Equal(s.TotalBills.Add(s.DiscretionarySpent)) {
			t.Errorf("case %d: totalSpent %s != totalBills %s + spent %s", i, s.TotalSpent, s.TotalBills, s.DiscretionarySpent)
		}

		if s.DiscretionLimit.IsZero() {
			if !s.DiscretionaryLeftPercentage.IsZero() {
				t.Errorf("case %d: expected 0%% with zero limit, got %s", i, s.DiscretionaryLeftPercentage)
			}
		} else if s.DiscretionaryLeftPercentage.IsNegative() || s.DiscretionaryLeftPercentage.GreaterThan(hundred) {
			t.Errorf("case %d: percentage out of range: %s", i, s.DiscretionaryLeftPercentage)
		}
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	input := AggregateInput{
		MonthlyIncome: dec("4200"),
		SavingsGoal:   dec("600"),
		Bills: []entity.Bill{
			bill("1300", entity.BillTypeMandatory, entity.BillStatusPaid, false),
			bill("15.99", entity.BillTypeOptional, entity.BillStatusPaid, true),
		},
		Cards: []entity.CreditCard{card("2000", "1500")},
	}

	first := Aggregate(input)
	input.Now = time.Now().Add(time.Hour)
	second := Aggregate(input)

	pairs := map[string][2]decimal.Decimal{
		"TotalBills":         {first.TotalBills, second.TotalBills},
		"TotalSpent":         {first.TotalSpent, second.TotalSpent},
		"DiscretionLimit":    {first.DiscretionLimit, second.DiscretionLimit},
		"DiscretionarySpent": {first.DiscretionarySpent, second.DiscretionarySpent},
		"DiscretionaryLeft":  {first.DiscretionaryLeft, second.DiscretionaryLeft},
		"Percentage":         {first.DiscretionaryLeftPercentage, second.DiscretionaryLeftPercentage},
	}
	for name, p := range pairs {
		if !p[0].Equal(p[1]) {
			t.Errorf("%s differs between runs: %s vs %s", name, p[0], p[1])
		}
	}
	if len(first.MandatoryBills) != len(second.MandatoryBills) || len(first.OptionalBills) != len(second.OptionalBills) {
		t.Error("bill partitions differ between runs")
	}
	if first.LastUpdated.Equal(second.LastUpdated) {
		t.Error("expected LastUpdated to follow Now")
	}
}
