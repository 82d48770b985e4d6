package domain

import "time"

// Role is the authorization tag carried by every account and token.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleLawyer Role = "lawyer"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLawyer, RoleClient:
		return true
	}
	return false
}

// AccountStatus is the hold flag of an account. Both states are reachable
// from each other.
type AccountStatus string

const (
	StatusActive AccountStatus = "active"
	StatusHold   AccountStatus = "hold"
)

// Valid reports whether s is active or hold.
func (s AccountStatus) Valid() bool {
	return s == StatusActive || s == StatusHold
}

// Account models a stored user identity (admin, lawyer or client).
type Account struct {
	ID           string        `json:"_id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	Name         string        `json:"name"`
	Username     string        `json:"username,omitempty"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// IsClient reports whether the account was created with the client role.
func (a *Account) IsClient() bool {
	return a.Role == RoleClient
}
