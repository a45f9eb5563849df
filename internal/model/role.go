package model

// Role is the closed set of account roles. Registration always assigns
// RoleUser; RoleAdmin accounts are created out-of-band (see cmd/seed).
type Role string

const (
	// RoleUser is the default role for registered accounts.
	RoleUser Role = "user"
	// RoleAdmin may verify advice and bypasses ownership checks.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether r grants admin privileges. An empty or unknown
// role is treated as non-admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
