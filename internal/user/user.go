// Package user defines the user profile consumed by the report pipeline.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUserNotFound is returned when the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// User is the profile attached to generated reports.
type User struct {
	ID    int64
	Name  string
	Email string
	Role  string
}

// DisplayName returns the user's name, or a placeholder when empty.
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return "User"
	}
	return u.Name
}

// DisplayRole returns the user's role label, or "N/A" when empty.
func (u *User) DisplayRole() string {
	if u == nil || u.Role == "" {
		return "N/A"
	}
	return u.Role
}

// Source provides user lookup. The persistence layer implements it.
type Source interface {
	// GetUser retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetUser(ctx context.Context, id int64) (*User, error)

	// CreateUser adds a user. A zero ID is assigned by the store;
	// a non-zero ID is preserved (import path).
	CreateUser(ctx context.Context, u *User) error
}

// Raw is a loosely-typed user record from external collaborators.
type Raw struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Parse converts a raw user record into a validated User.
func Parse(raw Raw) (*User, error) {
	if raw.ID <= 0 {
		return nil, errors.New("user id is required")
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, fmt.Errorf("user %d: name is required", raw.ID)
	}
	return &User{
		ID:    raw.ID,
		Name:  strings.TrimSpace(raw.Name),
		Email: strings.TrimSpace(raw.Email),
		Role:  strings.TrimSpace(raw.Role),
	}, nil
}
