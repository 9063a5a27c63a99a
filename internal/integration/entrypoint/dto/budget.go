package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
)

// BudgetSettingsRequest represents the request body for saving budget settings.
type BudgetSettingsRequest struct {
	MonthlyIncome *float64 `json:"monthly_income" binding:"required"`
	SavingsGoal   *float64 `json:"savings_goal" binding:"required"`
}

// BudgetSettingsResponse represents budget settings in API responses.
type BudgetSettingsResponse struct {
	MonthlyIncome        string    `json:"monthly_income"`
	SavingsGoal          string    `json:"savings_goal"`
	SelectedWeeklyTarget *string   `json:"selected_weekly_target"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// SelectTierRequest represents the request body for choosing a weekly tier.
// A null value clears the selection.
type SelectTierRequest struct {
	Value *float64 `json:"value"`
}

// SnapshotResponse represents the derived budget snapshot.
type SnapshotResponse struct {
	MonthlyIncome  string               `json:"monthly_income"`
	SavingsGoal    string               `json:"savings_goal"`
	MandatoryBills []BillResponse       `json:"mandatory_bills"`
	OptionalBills  []BillResponse       `json:"optional_bills"`
	CreditCards    []CreditCardResponse `json:"credit_cards"`

	TotalBills                     string `json:"total_bills"`
	TotalCreditCardSpent           string `json:"total_credit_card_spent"`
	TotalCreditCardBillsPaidByCard string `json:"total_credit_card_bills_paid_by_card"`
	TotalSpent                     string `json:"total_spent"`

	DiscretionLimit             string `json:"discretion_limit"`
	DiscretionarySpent          string `json:"discretionary_spent"`
	DiscretionaryLeft           string `json:"discretionary_left"`
	DiscretionaryLeftPercentage string `json:"discretionary_left_percentage"`
	OverBudget                  bool   `json:"over_budget"`

	LastUpdated time.Time `json:"last_updated"`
	Cached      bool      `json:"cached"`
}

// TierResponse represents one weekly tier.
type TierResponse struct {
	Label          string `json:"label"`
	Description    string `json:"description"`
	Catchphrase    string `json:"catchphrase"`
	Multiplier     string `json:"multiplier"`
	Value          string `json:"value"`
	Remaining      string `json:"remaining"`
	DailyRemaining string `json:"daily_remaining"`
	OverBudget     bool   `json:"over_budget"`
	OnTrack        bool   `json:"on_track"`
	GettingTight   bool   `json:"getting_tight"`
	Selected       bool   `json:"selected"`
	IsBest         bool   `json:"is_best"`
}

// TiersResponse represents the five weekly tiers and the envelope they split.
type TiersResponse struct {
	Tiers                []TierResponse `json:"tiers"`
	BestTier             TierResponse   `json:"best_tier"`
	SelectedWeeklyTarget *string        `json:"selected_weekly_target"`
	DiscretionLimit      string         `json:"discretion_limit"`
	DiscretionaryLeft    string         `json:"discretionary_left"`
}

// DigestResponse represents the result of sending the weekly digest.
type DigestResponse struct {
	SentTo    string `json:"sent_to"`
	MessageID string `json:"message_id"`
}

// CoachTipResponse represents a coaching tip.
type CoachTipResponse struct {
	Tip      string       `json:"tip"`
	BestTier TierResponse `json:"best_tier"`
}

// ToBudgetSettingsResponse converts budget settings to their DTO.
func ToBudgetSettingsResponse(settings *entity.BudgetSettings) BudgetSettingsResponse {
	return BudgetSettingsResponse{
		MonthlyIncome:        valueobject.FormatMoney(settings.MonthlyIncome),
		SavingsGoal:          valueobject.FormatMoney(settings.SavingsGoal),
		SelectedWeeklyTarget: formatOptionalMoney(settings.SelectedWeeklyTarget),
		UpdatedAt:            settings.UpdatedAt,
	}
}

// ToSnapshotResponse converts a snapshot to its DTO.
func ToSnapshotResponse(s entity.BudgetSnapshot, cached bool) SnapshotResponse {
	return SnapshotResponse{
		MonthlyIncome:                  valueobject.FormatMoney(s.MonthlyIncome),
		SavingsGoal:                    valueobject.FormatMoney(s.SavingsGoal),
		MandatoryBills:                 ToBillResponses(s.MandatoryBills),
		OptionalBills:                  ToBillResponses(s.OptionalBills),
		CreditCards:                    ToCreditCardResponses(s.CreditCards),
		TotalBills:                     valueobject.FormatMoney(s.TotalBills),
		TotalCreditCardSpent:           valueobject.FormatMoney(s.TotalCreditCardSpent),
		TotalCreditCardBillsPaidByCard: valueobject.FormatMoney(s.TotalCreditCardBillsPaidByCard),
		TotalSpent:                     valueobject.FormatMoney(s.TotalSpent),
		DiscretionLimit:                valueobject.FormatMoney(s.DiscretionLimit),
		DiscretionarySpent:             valueobject.FormatMoney(s.DiscretionarySpent),
		DiscretionaryLeft:              valueobject.FormatMoney(s.DiscretionaryLeft),
		DiscretionaryLeftPercentage:    valueobject.FormatMoney(s.DiscretionaryLeftPercentage),
		OverBudget:                     s.IsOverBudget(),
		LastUpdated:                    s.LastUpdated,
		Cached:                         cached,
	}
}

// ToTierResponse converts a weekly tier to its DTO.
func ToTierResponse(t entity.WeeklyTier) TierResponse {
	return TierResponse{
		Label:          t.Label,
		Description:    t.Description,
		Catchphrase:    t.Catchphrase,
		Multiplier:     t.Multiplier.String(),
		Value:          valueobject.FormatMoney(t.Value),
		Remaining:      valueobject.FormatMoney(t.Remaining),
		DailyRemaining: valueobject.FormatMoney(t.DailyRemaining),
		OverBudget:     t.OverBudget,
		OnTrack:        t.OnTrack,
		GettingTight:   t.GettingTight,
		Selected:       t.Selected,
		IsBest:         t.IsBest,
	}
}

// ToTiersResponse converts tiers plus their context to the DTO.
func ToTiersResponse(tiers []entity.WeeklyTier, best entity.WeeklyTier, selected *decimal.Decimal, snapshot entity.BudgetSnapshot) TiersResponse {
	out := make([]TierResponse, len(tiers))
	for i, t := range tiers {
		out[i] = ToTierResponse(t)
	}
	return TiersResponse{
		Tiers:                out,
		BestTier:             ToTierResponse(best),
		SelectedWeeklyTarget: formatOptionalMoney(selected),
		DiscretionLimit:      valueobject.FormatMoney(snapshot.DiscretionLimit),
		DiscretionaryLeft:    valueobject.FormatMoney(snapshot.DiscretionaryLeft),
	}
}

func formatOptionalMoney(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := valueobject.FormatMoney(*d)
	return &s
}
