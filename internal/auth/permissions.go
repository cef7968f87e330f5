package auth

import "errors"

const (
	RoleAdmin      = "admin"
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
)

// Permissions per role
var Permissions = map[string][]string{
	RoleAdmin: {
		"users:read",
		"users:write",
		"users:delete",
		"jobs:read",
		"jobs:write",
		"jobs:delete",
		"settings:write",
		"system:admin",
	},
	RoleClient: {
		"users:read",
		"users:write:self",
		"jobs:read",
		"jobs:write:self",
		"proposals:read:own-jobs",
		"payments:write:self",
	},
	RoleFreelancer: {
		"users:read",
		"users:write:self",
		"jobs:read",
		"proposals:write:self",
		"wallet:read:self",
	},
}

// HasPermission reports whether the role carries the permission
func HasPermission(role, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CanPerformAction checks a permission against token claims
func CanPerformAction(claims *Claims, permission string) bool {
	return HasPermission(claims.UserType, permission)
}

// IsAdmin reports whether the claims belong to an administrator
func IsAdmin(claims *Claims) bool {
	return claims.UserType == RoleAdmin
}

// ValidateRole rejects unknown roles
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleClient, RoleFreelancer:
		return nil
	default:
		return errors.New("invalid role")
	}
}
