// Package service holds the pure budget derivation engine: bill status
// resolution, snapshot aggregation and weekly tier generation.
package service

import (
	"github.com/shopspring/decimal"

	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
)

var (
	weeksPerMonth      = decimal.NewFromInt(valueobject.WeeksPerMonth)
	remainingWeeks     = decimal.NewFromInt(valueobject.WeeksPerMonth - 1)
	daysPerWeek        = decimal.NewFromInt(valueobject.DaysPerWeek)
	tightnessThreshold = decimal.RequireFromString("0.5")
)

// GenerateTiers builds the five weekly tiers for a discretionary envelope.
// Exactly one returned tier has IsBest set.
func GenerateTiers(discretionLimit, discretionaryLeft decimal.Decimal) []entity.WeeklyTier {
	baseWeekly := discretionLimit.Div(weeksPerMonth)
	definitions := valueobject.SpendingTiers()

	tiers := make([]entity.WeeklyTier, len(definitions))
	bestAffordable := -1
	for i, def := range definitions {
		weeklyTarget := baseWeekly.Mul(def.Multiplier)
		// what is left after spending at this rate for the other three weeks
		toSpendThisWeek := discretionaryLeft.Sub(weeklyTarget.Mul(remainingWeeks))
		remaining := valueobject.ClampZero(toSpendThisWeek)
		onTrack := !toSpendThisWeek.IsNegative()

		if bestAffordable == -1 && onTrack {
			bestAffordable = i
		}

		tiers[i] = entity.WeeklyTier{
			Multiplier:     def.Multiplier,
			Label:          def.Label,
			Description:    def.Description,
			Catchphrase:    def.Catchphrase,
			Value:          weeklyTarget,
			Remaining:      remaining,
			DailyRemaining: valueobject.ClampZero(remaining.Div(daysPerWeek)),
			OverBudget:     remaining.IsZero(),
			OnTrack:        onTrack,
			GettingTight:   remaining.LessThan(weeklyTarget.Mul(tightnessThreshold)),
		}
	}

	switch {
	case !discretionaryLeft.IsPositive():
		tiers[len(tiers)-1].IsBest = true
	case bestAffordable >= 0:
		tiers[bestAffordable].IsBest = true
	default:
		tiers[0].IsBest = true
	}

	return tiers
}

// MarkSelected flags the tiers whose weekly value equals the selected target
// to the cent. A nil target clears every selection.
func MarkSelected(tiers []entity.WeeklyTier, selected *decimal.Decimal) []entity.WeeklyTier {
	for i := range tiers {
		tiers[i].Selected = selected != nil && sameCents(tiers[i].Value, *selected)
	}
	return tiers
}

// BestTier returns the recommended tier.
func BestTier(tiers []entity.WeeklyTier) (entity.WeeklyTier, bool) {
	for _, t := range tiers {
		if t.IsBest {
			return t, true
		}
	}
	return entity.WeeklyTier{}, false
}

// FindTier returns the tier whose weekly value equals value to the cent.
func FindTier(tiers []entity.WeeklyTier, value decimal.Decimal) (entity.WeeklyTier, bool) {
	for _, t := range tiers {
		if sameCents(t.Value, value) {
			return t, true
		}
	}
	return entity.WeeklyTier{}, false
}

// Tier values are shown and stored with two decimals.
func sameCents(a, b decimal.Decimal) bool {
	return a.Round(2).Equal(b.Round(2))
}
