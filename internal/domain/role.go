package domain

// Role represents an account's privilege level
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// AllRoles contains all valid roles in ascending privilege order
var AllRoles = []Role{RoleUser, RoleAdmin, RoleSuperAdmin}

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// rank maps each role onto the total order user < admin < superadmin.
// Unknown roles rank below every valid role.
func (r Role) rank() int {
	switch r {
	case RoleUser:
		return 0
	case RoleAdmin:
		return 1
	case RoleSuperAdmin:
		return 2
	}
	return -1
}

// AtLeast reports whether the role grants at least the privileges of min.
// An invalid role never satisfies any minimum.
func (r Role) AtLeast(min Role) bool {
	if !r.IsValid() {
		return false
	}
	return r.rank() >= min.rank()
}
