package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/usecase/budget"
	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
)

// Scenario is the TOML input of budgetctl.
//
//	monthly_income = 5000
//	savings_goal = 1000
//
//	[[bills]]
//	name = "Rent"
//	amount = 1500
//	due_date = 1
//	type = "mandatory"
//
//	[[cards]]
//	name = "Visa"
//	limit = 1000
//	available = 700
type Scenario struct {
	MonthlyIncome        float64        `toml:"monthly_income"`
	SavingsGoal          float64        `toml:"savings_goal"`
	SelectedWeeklyTarget *float64       `toml:"selected_weekly_target"`
	Bills                []ScenarioBill `toml:"bills"`
	Cards                []ScenarioCard `toml:"cards"`
}

// ScenarioBill is one [[bills]] entry. A missing status means unpaid.
type ScenarioBill struct {
	Name             string  `toml:"name"`
	Amount           float64 `toml:"amount"`
	DueDate          int     `toml:"due_date"`
	Type             string  `toml:"type"`
	Status           string  `toml:"status"`
	PaidByCreditCard bool    `toml:"paid_by_credit_card"`
}

// ScenarioCard is one [[cards]] entry.
type ScenarioCard struct {
	Name      string  `toml:"name"`
	Limit     float64 `toml:"limit"`
	Available float64 `toml:"available"`
}

// LoadScenario decodes a scenario file, rejecting unknown keys.
func LoadScenario(path string) (*Scenario, error) {
	var sc Scenario
	meta, err := toml.DecodeFile(path, &sc)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("scenario %s: unknown key %q", path, undecoded[0].String())
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

func (s *Scenario) validate() error {
	for i, b := range s.Bills {
		if b.Type != "" && !entity.BillType(b.Type).IsValid() {
			return fmt.Errorf("bills[%d]: unknown type %q", i, b.Type)
		}
		if b.Status != "" && !entity.BillStatus(b.Status).IsValid() {
			return fmt.Errorf("bills[%d]: unknown status %q", i, b.Status)
		}
	}
	return nil
}

// Session converts the scenario into a budget session as of now.
// TOML admits nan and inf; every amount goes through MoneyFromFloat, which maps them to zero.
func (s *Scenario) Session(now time.Time) *budget.Session {
	userID := uuid.New()

	settings := entity.BudgetSettings{
		UserID:        userID,
		MonthlyIncome: valueobject.MoneyFromFloat(s.MonthlyIncome),
		SavingsGoal:   valueobject.MoneyFromFloat(s.SavingsGoal),
		UpdatedAt:     now,
	}
	if s.SelectedWeeklyTarget != nil {
		target := valueobject.MoneyFromFloat(*s.SelectedWeeklyTarget)
		settings.SelectedWeeklyTarget = &target
	}

	bills := make([]entity.Bill, len(s.Bills))
	for i, b := range s.Bills {
		bill := entity.NewBill(userID, b.Name, valueobject.MoneyFromFloat(b.Amount), b.DueDate, entity.BillType(b.Type), b.PaidByCreditCard)
		if b.Status != "" {
			bill.Status = entity.BillStatus(b.Status)
		}
		bills[i] = *bill
	}

	cards := make([]entity.CreditCard, len(s.Cards))
	for i, c := range s.Cards {
		card := entity.NewCreditCard(userID, c.Name, valueobject.MoneyFromFloat(c.Limit), valueobject.MoneyFromFloat(c.Available))
		card.LastUpdated = now
		cards[i] = *card
	}

	return budget.NewSession(settings, bills, cards, now)
}
