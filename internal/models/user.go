package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is what a signed-in user does in the community.
type Role string

const (
	RoleLeader Role = "leader"
	RoleAdmin  Role = "admin"
)

// User is a leader or administrator account used to sign in.
// Members tracked by the analytics are Persons, not Users.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the login address (unique).
	Email string

	// DisplayName is shown in the dashboard header.
	DisplayName string

	// PasswordHash is the bcrypt hash of the password.
	PasswordHash string

	Role Role

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser builds a leader account with a fresh ID.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Role:         RoleLeader,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
