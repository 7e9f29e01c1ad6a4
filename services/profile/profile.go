// File: services/profile/profile.go
package profile

import (
	"context"
	"fmt"
	"strings"

	"cursos/models"
	"cursos/services/validation"
)

// Backend is the part of the REST API the profile page uses.
type Backend interface {
	UpdateUser(ctx context.Context, token string, id int64, update models.UserUpdate) error
	ChangePassword(ctx context.Context, token, newPassword string) error
}

type ProfileService interface {
	Update(ctx context.Context, sess *models.Session, form Form) (*models.Session, error)
	ChangePassword(ctx context.Context, sess *models.Session, form PasswordForm) error
}

// DefaultProfileService is the production implementation.
type DefaultProfileService struct {
	API Backend
}

type Form struct {
	Name     string `json:"name" form:"name" validate:"personname"`
	LastName string `json:"lastName" form:"lastName" validate:"personname"`
	Surname  string `json:"surname" form:"surname" validate:"personname"`
	Email    string `json:"email" form:"email" validate:"looseemail"`
	Phone    string `json:"phone" form:"phone" validate:"phone10"`
}

type PasswordForm struct {
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"strongpassword"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"eqfield=NewPassword"`
}

// FormFor pre-fills the profile form from the session.
func FormFor(sess *models.Session) Form {
	return Form{
		Name:     sess.User.Name,
		LastName: sess.User.LastName,
		Surname:  sess.User.Surname,
		Email:    sess.User.Email,
		Phone:    sess.User.Phone,
	}
}

// Update saves the profile and returns the session to persist in its place.
func (s *DefaultProfileService) Update(ctx context.Context, sess *models.Session, form Form) (*models.Session, error) {
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	update := models.UserUpdate{
		Name:     form.Name,
		LastName: form.LastName,
		Surname:  form.Surname,
		Email:    form.Email,
		Phone:    form.Phone,
	}
	if err := s.API.UpdateUser(ctx, sess.Token, sess.User.ID, update); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	next := sess.WithProfile(update)
	return &next, nil
}

func (s *DefaultProfileService) ChangePassword(ctx context.Context, sess *models.Session, form PasswordForm) error {
	if err := validation.Struct(form); err != nil {
		return err
	}
	if err := s.API.ChangePassword(ctx, sess.Token, form.NewPassword); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
