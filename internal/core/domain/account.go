package domain

import "github.com/google/uuid"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleHerder   Role = "HERDER"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleHerder, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	AccountID uuid.UUID
	Role      Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// ScopeUser returns the user id a list query must be restricted to.
// Admins may ask for anyone (or everyone, with uuid.Nil); everybody else
// only ever sees their own records.
func (p Principal) ScopeUser(requested uuid.UUID) uuid.UUID {
	if p.IsAdmin() {
		return requested
	}
	return p.AccountID
}
