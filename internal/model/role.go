package model

// Role is the coarse permission level of a user account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEngineer Role = "engineer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEngineer
}

// Privileges returns the privilege codes granted by the role.
func (r Role) Privileges() []string {
	switch r {
	case RoleAdmin:
		return AllPrivileges
	case RoleEngineer:
		return engineerPrivileges
	}
	return nil
}
