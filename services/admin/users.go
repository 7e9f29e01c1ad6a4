// File: services/admin/users.go
package admin

import (
	"context"
	"fmt"
	"strings"

	"cursos/models"
	"cursos/services/listing"
	"cursos/services/validation"
)

var userFields = listing.Fields[UserRow]{
	"id":           func(u UserRow) any { return u.ID },
	"name":         func(u UserRow) any { return u.FullName },
	"email":        func(u UserRow) any { return u.Email },
	"role":         func(u UserRow) any { return u.Role },
	"statusActive": func(u UserRow) any { return u.StatusActive },
}

// Users lists every account, marking the signed-in admin's own row.
func (s *DefaultAdminService) Users(ctx context.Context, sess *models.Session, q listing.Query) (*listing.Page[UserRow], error) {
	users, err := s.API.ListUsers(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			User:     u,
			FullName: u.FullName(),
			Role:     u.Rol.RoleEnum,
			IsSelf:   u.ID == sess.User.ID,
		})
	}
	page := listing.Apply(rows, q, userFields)
	return &page, nil
}

func (s *DefaultAdminService) UpdateUser(ctx context.Context, sess *models.Session, id int64, form UserForm) error {
	form.Email = strings.TrimSpace(form.Email)
	if err := validation.Struct(form); err != nil {
		return err
	}
	update := models.UserUpdate{
		Name:     strings.TrimSpace(form.Name),
		LastName: strings.TrimSpace(form.LastName),
		Surname:  strings.TrimSpace(form.Surname),
		Email:    form.Email,
	}
	if err := s.API.UpdateUser(ctx, sess.Token, id, update); err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

// ToggleUser flips a user's active status. The admin's own account is refused
// before any backend call.
func (s *DefaultAdminService) ToggleUser(ctx context.Context, sess *models.Session, id int64) error {
	if id == sess.User.ID {
		return ErrSelfToggle
	}
	if err := s.API.ToggleUser(ctx, sess.Token, id); err != nil {
		return fmt.Errorf("toggle user %d: %w", id, err)
	}
	return nil
}
