package models

import "strings"

// Role is a player role in this game's team composition. Values are stored
// in their display form so existing documents keep rendering unchanged.
type Role string

const (
	RoleHunter   Role = "监管者"
	RoleSurvivor Role = "求生者"
	RoleCoach    Role = "教练"
)

// ParseRole accepts either the stored display form or the English name.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleHunter), "hunter":
		return RoleHunter, true
	case string(RoleSurvivor), "survivor":
		return RoleSurvivor, true
	case string(RoleCoach), "coach":
		return RoleCoach, true
	}
	return Role(s), false
}

func (r Role) IsHunter() bool {
	return r == RoleHunter
}
