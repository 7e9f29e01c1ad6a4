// models/session.go
package models

// Session is the record persisted in the encrypted session cookie.
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// SessionUser is the authenticated user's copy held in the session.
type SessionUser struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LastName string  `json:"lastName"`
	Surname  string  `json:"surname"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone,omitempty"`
	Rol      RoleRef `json:"rol"`
}

// RoleName returns user.rol.roleEnum, or "" when absent.
func (s *Session) RoleName() string {
	if s == nil {
		return ""
	}
	return s.User.Rol.RoleEnum
}

// Role parses the session's role. A nil session is anonymous.
func (s *Session) Role() (Role, error) {
	if s == nil {
		return RoleAnonymous, nil
	}
	return ParseRole(s.RoleName())
}

// WithProfile returns a copy of the session carrying the updated profile fields.
func (s Session) WithProfile(u UserUpdate) Session {
	s.User.Name = u.Name
	s.User.LastName = u.LastName
	s.User.Surname = u.Surname
	s.User.Email = u.Email
	s.User.Phone = u.Phone
	return s
}
