package auth

import (
	"context"
	"time"

	"cursos/models"
	"cursos/services/backend"
)

// Backend is the part of the REST API the auth flows use.
type Backend interface {
	Login(ctx context.Context, creds backend.Credentials) (*models.Session, error)
	Register(ctx context.Context, reg models.Registration) error
	RegisterTeacher(ctx context.Context, token string, reg models.Registration) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, reset backend.PasswordReset) error
	Enroll(ctx context.Context, token string, courseID int64) error
}

// AuthService covers login, registration and password reset.
type AuthService interface {
	Login(ctx context.Context, form LoginForm, target LoginTarget) (*LoginResult, error)
	Register(ctx context.Context, form RegisterForm) (*Outcome, error)
	RegisterTeacher(ctx context.Context, token string, form TeacherForm) (*Outcome, error)
	RequestPasswordReset(ctx context.Context, form ResetRequestForm) (*Outcome, error)
	ResetPassword(ctx context.Context, form ResetForm) (*Outcome, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	API           Backend
	RedirectDelay time.Duration
}

// LoginForm is the login body.
type LoginForm struct {
	Email    string `json:"email" form:"email" validate:"required,looseemail"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginTarget carries the optional query parameters that steer post-login navigation.
type LoginTarget struct {
	Redirect       string
	EnrollCourseID int64
}

// LoginResult is a successful login.
type LoginResult struct {
	Session  *models.Session
	Role     models.Role
	Next     string
	Enrolled bool
}

// RegisterForm is student self-registration.
type RegisterForm struct {
	Name     string `json:"name" form:"name" validate:"notblank"`
	LastName string `json:"lastName" form:"lastName" validate:"notblank"`
	Surname  string `json:"surname" form:"surname"`
	Email    string `json:"email" form:"email" validate:"notblank"`
	Password string `json:"password" form:"password" validate:"notblank"`
}

// TeacherForm is teacher registration by an admin.
type TeacherForm struct {
	Name     string `json:"name" form:"name" validate:"personname"`
	LastName string `json:"lastName" form:"lastName" validate:"personname"`
	Surname  string `json:"surname" form:"surname" validate:"personname"`
	Phone    string `json:"phone" form:"phone" validate:"phone10"`
	Email    string `json:"email" form:"email" validate:"looseemail"`
	Password string `json:"password" form:"password" validate:"strongpassword"`
}

type ResetRequestForm struct {
	Email string `json:"email" form:"email" validate:"looseemail"`
}

type ResetForm struct {
	Token           string `json:"token" form:"token" validate:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"strongpassword"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"eqfield=NewPassword"`
}

// Outcome is a successful form submission: a toast plus an optional delayed navigation.
type Outcome struct {
	Toast    models.Toast
	Redirect string
	Delay    time.Duration
}
