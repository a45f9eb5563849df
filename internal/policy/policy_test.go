package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"adviceboard/internal/model"
)

func TestIdentityIsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		expected bool
	}{
		{name: "anonymous", identity: nil, expected: false},
		{name: "user role", identity: &Identity{UserID: 1, Role: model.RoleUser}, expected: false},
		{name: "admin role", identity: &Identity{UserID: 1, Role: model.RoleAdmin}, expected: true},
		{name: "absent role", identity: &Identity{UserID: 1}, expected: false},
		{name: "unknown role", identity: &Identity{UserID: 1, Role: "superuser"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.identity.IsAdmin())
		})
	}
}

func TestScopeForList(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		expected ListScope
	}{
		{name: "anonymous sees verified only", identity: nil, expected: ScopeVerifiedOnly},
		{name: "regular user sees verified only", identity: &Identity{UserID: 7, Role: model.RoleUser}, expected: ScopeVerifiedOnly},
		{name: "roleless token sees verified only", identity: &Identity{UserID: 7}, expected: ScopeVerifiedOnly},
		{name: "admin sees everything", identity: &Identity{UserID: 1, Role: model.RoleAdmin}, expected: ScopeAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScopeForList(tt.identity))
		})
	}
}

func TestCanCreate(t *testing.T) {
	assert.False(t, CanCreate(nil))
	assert.True(t, CanCreate(&Identity{UserID: 3, Role: model.RoleUser}))
	assert.True(t, CanCreate(&Identity{UserID: 1, Role: model.RoleAdmin}))
}

func TestCanModify(t *testing.T) {
	const authorID = 42

	tests := []struct {
		name     string
		identity *Identity
		expected bool
	}{
		{name: "anonymous", identity: nil, expected: false},
		{name: "author", identity: &Identity{UserID: authorID, Role: model.RoleUser}, expected: true},
		{name: "other user", identity: &Identity{UserID: 7, Role: model.RoleUser}, expected: false},
		{name: "admin non-author", identity: &Identity{UserID: 7, Role: model.RoleAdmin}, expected: true},
		{name: "roleless author", identity: &Identity{UserID: authorID}, expected: true},
		{name: "roleless other user", identity: &Identity{UserID: 7}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanModify(tt.identity, authorID))
		})
	}
}

func TestCanVerify(t *testing.T) {
	assert.False(t, CanVerify(nil))
	assert.False(t, CanVerify(&Identity{UserID: 42, Role: model.RoleUser}))
	assert.False(t, CanVerify(&Identity{UserID: 42}))
	assert.True(t, CanVerify(&Identity{UserID: 1, Role: model.RoleAdmin}))
}
