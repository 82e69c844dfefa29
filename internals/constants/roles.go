package constants

import "fmt"

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
)

// Template pesan error role
const (
	ErrOnlyManagersCanAccess = "Only managers can access %s"
)

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleEmployee,
		RoleManager,
	}

	ManagerOnly = []string{
		RoleManager,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
