// File: services/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"strings"

	"cursos/models"
	"cursos/services/backend"
	"cursos/services/validation"
	"cursos/utils"

	"go.uber.org/zap"
)

// Login authenticates and resolves where the visitor goes next:
// pending enrollment first, then a same-site redirect, then the role landing page.
func (s *DefaultAuthService) Login(ctx context.Context, form LoginForm, target LoginTarget) (*LoginResult, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validation.Struct(form); err != nil {
		return nil, err
	}

	sess, err := s.API.Login(ctx, backend.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	role, err := sess.Role()
	if err != nil {
		utils.GetLogger().Warn("Login returned an unroutable role", zap.String("role", sess.RoleName()))
		return nil, ErrUnknownRole
	}

	res := &LoginResult{Session: sess, Role: role}
	switch {
	case target.EnrollCourseID > 0:
		if err := s.API.Enroll(ctx, sess.Token, target.EnrollCourseID); err != nil {
			utils.GetLogger().Info("Post-login enrollment did not complete",
				zap.Int64("courseID", target.EnrollCourseID), zap.Error(err))
		} else {
			res.Enrolled = true
		}
		res.Next = fmt.Sprintf("/student/course/%d/view", target.EnrollCourseID)
	case SafeRedirect(target.Redirect):
		res.Next = target.Redirect
	default:
		res.Next = role.LandingPath()
	}
	return res, nil
}

// SafeRedirect accepts only same-site absolute paths.
func SafeRedirect(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") && !strings.Contains(path, `\`)
}

// Register creates a student account and sends the visitor to login after a delay.
func (s *DefaultAuthService) Register(ctx context.Context, form RegisterForm) (*Outcome, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	err := s.API.Register(ctx, models.Registration{
		Name:     strings.TrimSpace(form.Name),
		LastName: strings.TrimSpace(form.LastName),
		Surname:  strings.TrimSpace(form.Surname),
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
		Role:     models.RoleEnumStudent,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &Outcome{
		Toast: models.Toast{
			Severity: models.SeveritySuccess, Summary: "Registration complete",
			Detail: "You will be redirected to sign in.", Life: utils.ToastLife,
		},
		Redirect: "/login",
		Delay:    s.RedirectDelay,
	}, nil
}

// RegisterTeacher creates a teacher account on behalf of an admin.
func (s *DefaultAuthService) RegisterTeacher(ctx context.Context, token string, form TeacherForm) (*Outcome, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	err := s.API.RegisterTeacher(ctx, token, models.Registration{
		Name:     form.Name,
		LastName: form.LastName,
		Surname:  form.Surname,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
		Role:     models.RoleEnumTeacher,
	})
	if err != nil {
		return nil, fmt.Errorf("register teacher: %w", err)
	}
	return &Outcome{Toast: models.Toast{
		Severity: models.SeveritySuccess, Summary: "Success",
		Detail: "Teacher registered.", Life: utils.ToastLife,
	}}, nil
}

// RequestPasswordReset always answers neutrally so it does not reveal which emails exist.
func (s *DefaultAuthService) RequestPasswordReset(ctx context.Context, form ResetRequestForm) (*Outcome, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	if err := s.API.RequestPasswordReset(ctx, form.Email); err != nil {
		return nil, fmt.Errorf("request password reset: %w", err)
	}
	return &Outcome{Toast: models.Toast{
		Severity: models.SeveritySuccess, Summary: "Request sent",
		Detail: "If the email exists you will receive a link to reset your password.", Life: utils.ToastLife,
	}}, nil
}

// ResetPassword sets a new password from an emailed token.
func (s *DefaultAuthService) ResetPassword(ctx context.Context, form ResetForm) (*Outcome, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	err := s.API.ResetPassword(ctx, backend.PasswordReset{Token: form.Token, NewPassword: form.NewPassword})
	if err != nil {
		if backend.StatusOf(err) != 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResetLink, err)
		}
		return nil, fmt.Errorf("reset password: %w", err)
	}
	return &Outcome{
		Toast: models.Toast{
			Severity: models.SeveritySuccess, Summary: "Success",
			Detail: "Your password was reset. You will be redirected to sign in.", Life: utils.ToastLife,
		},
		Redirect: "/login",
		Delay:    s.RedirectDelay,
	}, nil
}
