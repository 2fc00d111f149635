package constants

import "fmt"

// User roles. Creators author content and manage the catalog,
// Learners consume it.
const (
	RoleLearner = "Learner"
	RoleCreator = "Creator"
)

// Role error message templates
const (
	ErrOnlyCreatorsCanAccess = "❌ Only Creators may access %s."
)

func RoleErrorCreator(feature string) string {
	return fmt.Sprintf(ErrOnlyCreatorsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleLearner,
		RoleCreator,
	}

	CreatorOnly = []string{
		RoleCreator,
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
