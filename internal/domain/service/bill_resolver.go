// Package service holds the pure budget derivation engine: bill status
// resolution, snapshot aggregation and weekly tier generation.
package service

import (
	"time"

	"github.com/vibe-budget/backend/internal/domain/entity"
)

// IsPastDue reports whether a bill due on dueDay is past due on today.
// Past-due bills are assumed paid, never overdue.
func IsPastDue(dueDay int, today time.Time) bool {
	return today.Day() > dueDay
}

// ResolveBill marks an unpaid, past-due bill as paid. The second return value
// is true when the status changed and the new status needs persisting.
func ResolveBill(bill entity.Bill, today time.Time) (entity.Bill, bool) {
	if bill.IsPaid() || !IsPastDue(bill.DueDate, today) {
		return bill, false
	}

	bill.Status = entity.BillStatusPaid
	return bill, true
}

// ResolveBills runs ResolveBill over every bill. It returns the full resolved
// list and the subset whose status transitioned.
func ResolveBills(bills []entity.Bill, today time.Time) (resolved []entity.Bill, transitioned []entity.Bill) {
	resolved = make([]entity.Bill, len(bills))
	for i, b := range bills {
		r, changed := ResolveBill(b, today)
		resolved[i] = r
		if changed {
			transitioned = append(transitioned, r)
		}
	}
	return resolved, transitioned
}
