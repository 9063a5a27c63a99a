// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account owning one budget, its bills and its credit cards.
type User struct {
	ID                uuid.UUID
	Email             string
	Name              string
	PasswordHash      string
	WeeklyDigestOptIn bool
	// LastDigestSentAt is when the digest worker last mailed this user.
	LastDigestSentAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:                uuid.New(),
		Email:             email,
		Name:              name,
		PasswordHash:      passwordHash,
		WeeklyDigestOptIn: true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
