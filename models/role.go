// models/role.go
package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of visitor kinds. A session whose roleEnum does not parse
// into one of these is corrupt; there is no "unknown" Role value.
type Role int

const (
	RoleAnonymous Role = iota
	RoleAdmin
	RoleTeacher
	RoleStudent
)

// Role enum strings as sent by the backend.
const (
	RoleEnumAdmin   = "ADMIN"
	RoleEnumTeacher = "TEACHER"
	RoleEnumStudent = "STUDENT"
)

// ErrUnknownRole is returned by ParseRole for unrecognised role strings.
type ErrUnknownRole struct {
	Value string
}

func (e ErrUnknownRole) Error() string {
	return fmt.Sprintf("unrecognized role %q", e.Value)
}

// ParseRole maps a backend roleEnum onto a Role. The match is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case RoleEnumAdmin:
		return RoleAdmin, nil
	case RoleEnumTeacher:
		return RoleTeacher, nil
	case RoleEnumStudent:
		return RoleStudent, nil
	default:
		return RoleAnonymous, ErrUnknownRole{Value: s}
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return RoleEnumAdmin
	case RoleTeacher:
		return RoleEnumTeacher
	case RoleStudent:
		return RoleEnumStudent
	default:
		return "ANONYMOUS"
	}
}

// LandingPath is where "/" sends a visitor of this role.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/users"
	case RoleTeacher:
		return "/teacher/courses"
	case RoleStudent:
		return "/student/my-courses"
	default:
		return "/courses"
	}
}
