package domain

import (
	"context"
	"time"
)

// Role is the closed set of account roles. Authorization decisions go
// through the capability methods, not string comparison at call sites.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanManageCourses reports whether the role may author inductions,
// chapters and questions, and review submissions.
func (r Role) CanManageCourses() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CanManageAdmins reports whether the role may create or remove admin
// accounts.
func (r Role) CanManageAdmins() bool {
	return r == RoleSuperAdmin
}

// User represents a domain user object
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Validate validates the user
func (u *User) Validate() error {
	if u.Email == "" {
		return ValidationErrors{NewMissingFieldError("email")}
	}
	if u.Name == "" {
		return ValidationErrors{NewMissingFieldError("name")}
	}
	if !u.Role.Valid() {
		return ValidationErrors{NewInvalidFormatError("role", u.Role)}
	}
	return nil
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsersByRoles(ctx context.Context, roles []Role) ([]User, error)
}
