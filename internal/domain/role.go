package domain

import "strings"

// Role is the permission label a user holds against a campaign or session.
type Role int

const (
	// RoleUnspecified represents the absence of a resolved role.
	RoleUnspecified Role = iota
	// RoleOwner indicates the campaign owner.
	RoleOwner
	// RoleGM indicates a game master.
	RoleGM
	// RolePlayer indicates a regular player.
	RolePlayer
)

// Manager reports whether the role grants management rights.
func (r Role) Manager() bool {
	return r == RoleOwner || r == RoleGM
}

// RoleLabel returns the string label for a role.
func RoleLabel(role Role) string {
	switch role {
	case RoleOwner:
		return "OWNER"
	case RoleGM:
		return "GM"
	case RolePlayer:
		return "PLAYER"
	default:
		return "UNSPECIFIED"
	}
}

// RoleFromLabel converts a role label to a Role value.
func RoleFromLabel(label string) Role {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "OWNER":
		return RoleOwner
	case "GM":
		return RoleGM
	case "PLAYER":
		return RolePlayer
	default:
		return RoleUnspecified
	}
}
