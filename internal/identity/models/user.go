// Package models defines the portal account entity.
package models

import (
	"github.com/google/uuid"

	"appguard/internal/access"
	dErrors "appguard/pkg/domain-errors"
	"appguard/pkg/email"
)

// User is a portal account. PasswordHash is never serialized.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         access.Role `json:"role"`
}

// NewUser validates account fields and returns a user with a zero ID; the
// store assigns the ID on insert. An empty display name is derived from the
// email address.
func NewUser(username, name, emailAddr, passwordHash string, role access.Role) (*User, error) {
	if username == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "username is required")
	}
	if !email.Validate(emailAddr) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "email must be a valid email address")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "password is required")
	}
	if _, ok := access.ParseRole(string(role)); !ok {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown role %q", role)
	}
	if name == "" {
		first, last := email.DeriveNameFromEmail(emailAddr)
		name = first + " " + last
	}
	return &User{
		Username:     username,
		Name:         name,
		Email:        emailAddr,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}
