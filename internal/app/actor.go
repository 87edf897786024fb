package app

import "strings"

// Role is resolved by the upstream gateway; the engine only enforces it.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleManager  Role = "manager"
)

// ParseRole maps a gateway-injected role value onto a known role. Anything
// unrecognized falls back to customer, the least privileged role.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStaff:
		return RoleStaff
	case RoleManager:
		return RoleManager
	}
	return RoleCustomer
}

// Actor identifies who is asking for an operation. Identity and role
// resolution are external concerns; requests arrive with both already
// established.
type Actor struct {
	ID   string
	Role Role
}

// IsStaff reports whether the actor holds a staff-level role.
func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff || a.Role == RoleManager
}
