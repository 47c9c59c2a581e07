// Package auth holds the identity and role model: verified claims attached
// to a request and the role order used by authorization checks.
package auth

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Roles form a total order: user < admin < super_admin. Checks compare
// ranks instead of matching role names pairwise.
var roleRanks = map[Role]int{
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// AtLeast reports whether r carries at least the privileges of min. Unknown
// roles rank below everything.
func (r Role) AtLeast(min Role) bool {
	return roleRanks[r] >= roleRanks[min]
}
