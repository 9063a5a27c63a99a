// Package valueobject contains domain value objects for the budgeting system.
package valueobject

import "github.com/shopspring/decimal"

// SpendingTierDefinition is the fixed presentation data of one weekly tier.
type SpendingTierDefinition struct {
	Multiplier  decimal.Decimal
	Label       string
	Description string
	Catchphrase string
}

// WeeksPerMonth is the four-week month approximation used for weekly targets.
const WeeksPerMonth = 4

// DaysPerWeek divides the remaining weekly amount into a daily one.
const DaysPerWeek = 7

// SpendingTiers returns the five tiers, most generous first.
func SpendingTiers() []SpendingTierDefinition {
	return []SpendingTierDefinition{
		{
			Multiplier:  decimal.RequireFromString("1.0"),
			Label:       "Main Character Money",
			Description: "You're thriving",
			Catchphrase: "I'll take the vibe AND the fries",
		},
		{
			Multiplier:  decimal.RequireFromString("0.8"),
			Label:       "Soft Flex Zone",
			Description: "Bills are paid",
			Catchphrase: "Not rich, not broke",
		},
		{
			Multiplier:  decimal.RequireFromString("0.6"),
			Label:       "Watch Yo' Wallet",
			Description: "You're okay… if nothing weird happens",
			Catchphrase: "Maybe skip the oat milk",
		},
		{
			Multiplier:  decimal.RequireFromString("0.4"),
			Label:       "Venmo Me $5",
			Description: "Living off leftovers",
			Catchphrase: "Is tap water free?",
		},
		{
			Multiplier:  decimal.RequireFromString("0.2"),
			Label:       "Card Declined Era",
			Description: "Budgeting air",
			Catchphrase: "Do you take vibes?",
		},
	}
}
