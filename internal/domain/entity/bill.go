// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultBillName is used when a bill is created without a name.
const DefaultBillName = "Untitled Bill"

// BillType determines which bucket a bill is summed into.
type BillType string

const (
	BillTypeMandatory BillType = "mandatory"
	BillTypeOptional  BillType = "optional"
)

// Normalize maps unknown or missing types to mandatory.
func (t BillType) Normalize() BillType {
	if t == BillTypeOptional {
		return BillTypeOptional
	}
	return BillTypeMandatory
}

// IsValid reports whether t is one of the known bill types.
func (t BillType) IsValid() bool {
	return t == BillTypeMandatory || t == BillTypeOptional
}

// BillStatus is the single source of truth for whether a bill was settled.
type BillStatus string

const (
	BillStatusPaid   BillStatus = "paid"
	BillStatusUnpaid BillStatus = "unpaid"
)

// IsValid reports whether s is one of the known bill statuses.
func (s BillStatus) IsValid() bool {
	return s == BillStatusPaid || s == BillStatusUnpaid
}

// Bill represents a recurring monthly obligation owned by a single user.
type Bill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	Amount           decimal.Decimal
	DueDate          int // day of month, 1..31, stored as entered
	Type             BillType
	Status           BillStatus
	PaidByCreditCard bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewBill creates a new unpaid Bill, applying the name and type defaults.
func NewBill(userID uuid.UUID, name string, amount decimal.Decimal, dueDate int, billType BillType, paidByCreditCard bool) *Bill {
	now := time.Now().UTC()
	if name == "" {
		name = DefaultBillName
	}

	return &Bill{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             name,
		Amount:           amount,
		DueDate:          dueDate,
		Type:             billType.Normalize(),
		Status:           BillStatusUnpaid,
		PaidByCreditCard: paidByCreditCard,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// IsPaid reports whether the bill has been settled.
func (b Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// IsMandatory reports whether the bill belongs to the mandatory bucket.
func (b Bill) IsMandatory() bool {
	return b.Type.Normalize() == BillTypeMandatory
}

// EffectiveDueDay clamps the stored due day to the last day of the given month.
func (b Bill) EffectiveDueDay(year int, month time.Month) int {
	last := DaysInMonth(year, month)
	if b.DueDate > last {
		return last
	}
	if b.DueDate < 1 {
		return 1
	}
	return b.DueDate
}

// DueDateIn returns the calendar date the bill falls due in the given month.
func (b Bill) DueDateIn(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month, b.EffectiveDueDay(year, month), 0, 0, 0, 0, loc)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
