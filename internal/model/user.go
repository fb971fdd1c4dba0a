package model

import "fmt"

type User struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Status    UserStatus `json:"status"`
	// LastLogin is a calendar date in YYYY-MM-DD form.
	LastLogin string `json:"lastLogin"`
}

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

// Validate reports whether the role is one of the allowed values.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return nil
	}
	return fmt.Errorf("invalid role: %q", string(r))
}

// UserStatus is the closed set of account states.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// Validate reports whether the status is one of the allowed values.
func (s UserStatus) Validate() error {
	switch s {
	case UserStatusActive, UserStatusInactive:
		return nil
	}
	return fmt.Errorf("invalid user status: %q", string(s))
}
