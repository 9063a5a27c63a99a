package adapter

import "time"

// BudgetMetrics records snapshot derivation activity.
type BudgetMetrics interface {
	ObserveRecompute(duration time.Duration)
	IncSnapshotCache(hit bool)
	AddResolvedBills(count int)
}
