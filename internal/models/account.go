package models

import (
	"time"
)

// Role determines which dashboard and actions are available to an account.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ValidRoles defines the roles accepted at login.
var ValidRoles = map[Role]bool{
	RoleUser:       true,
	RoleAdmin:      true,
	RoleSuperAdmin: true,
}

// Account represents a stored identity with a role and credentials.
// JSON field names match the persisted blob shape, which is unversioned.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"` // opaque, compared verbatim
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountView is the API-facing shape of an account, without credentials.
type AccountView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// View returns the redacted API representation of the account.
func (a *Account) View() AccountView {
	return AccountView{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}
