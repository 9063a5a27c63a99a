// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// WeeklyTier is one weekly spending target derived from a snapshot.
type WeeklyTier struct {
	Multiplier  decimal.Decimal
	Label       string
	Description string
	Catchphrase string

	Value          decimal.Decimal // weekly spending target
	Remaining      decimal.Decimal
	DailyRemaining decimal.Decimal

	OverBudget   bool
	OnTrack      bool
	GettingTight bool
	Selected     bool
	IsBest       bool
}
