// Package policy holds the pure authorization decisions for advice records.
// Every rule is a function of the caller's identity and, where relevant, the
// record's author; nothing here touches storage or HTTP.
package policy

import "adviceboard/internal/model"

// Identity is the authenticated caller derived from a verified token.
// A nil *Identity means the caller is anonymous.
type Identity struct {
	UserID uint
	Role   model.Role
}

// IsAdmin reports whether the identity carries the admin role. An absent
// role claim yields the zero Role, which is non-admin.
func (id *Identity) IsAdmin() bool {
	if id == nil {
		return false
	}
	switch id.Role {
	case model.RoleAdmin:
		return true
	case model.RoleUser:
		return false
	default:
		// unknown or absent role: non-admin
		return false
	}
}

// ListScope describes which advice records a listing may return.
type ListScope int

const (
	// ScopeVerifiedOnly limits listing to admin-verified records.
	ScopeVerifiedOnly ListScope = iota
	// ScopeAll places no visibility restriction on listing.
	ScopeAll
)

// ScopeForList returns the visibility scope for a general listing:
// admins see everything, everyone else only verified records.
func ScopeForList(id *Identity) ListScope {
	if id.IsAdmin() {
		return ScopeAll
	}
	return ScopeVerifiedOnly
}

// CanCreate reports whether the caller may create advice. Creation requires
// authentication; the author is always the caller, never a client-supplied id.
func CanCreate(id *Identity) bool {
	return id != nil
}

// CanModify reports whether the caller may update or delete a record owned
// by authorID. Authors may modify their own records; admins may modify any.
func CanModify(id *Identity, authorID uint) bool {
	if id == nil {
		return false
	}
	if id.IsAdmin() {
		return true
	}
	return id.UserID == authorID
}

// CanVerify reports whether the caller may mark a record as verified.
func CanVerify(id *Identity) bool {
	return id.IsAdmin()
}
