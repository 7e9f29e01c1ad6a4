// models/user.go
package models

// RoleRef is the nested role object of a backend user.
type RoleRef struct {
	RoleEnum string `json:"roleEnum"`
}

// User represents a platform user as returned by the backend.
type User struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	LastName     string  `json:"lastName"`
	Surname      string  `json:"surname"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone,omitempty"`
	StatusActive bool    `json:"statusActive"`
	Rol          RoleRef `json:"rol"`
}

// FullName joins the name parts that are present.
func (u User) FullName() string {
	name := u.Name
	for _, part := range []string{u.LastName, u.Surname} {
		if part != "" {
			name += " " + part
		}
	}
	return name
}

// UserUpdate is the editable subset of a user.
type UserUpdate struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// Registration is the body of both self-registration and teacher registration.
type Registration struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
