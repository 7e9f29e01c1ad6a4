package admin

import (
	"context"

	"cursos/models"
	"cursos/services/listing"
)

// Backend is the part of the REST API the admin screens use.
type Backend interface {
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	UpdateUser(ctx context.Context, token string, id int64, update models.UserUpdate) error
	ToggleUser(ctx context.Context, token string, id int64) error
	ListCategories(ctx context.Context, token string) ([]models.Category, error)
	CreateCategory(ctx context.Context, token string, cat models.Category) error
	UpdateCategory(ctx context.Context, token string, cat models.Category) error
	ToggleCategory(ctx context.Context, token string, id int64) error
	AuditLogs(ctx context.Context, token string) ([]models.AuditLog, error)
}

type AdminService interface {
	// Users
	Users(ctx context.Context, sess *models.Session, q listing.Query) (*listing.Page[UserRow], error)
	UpdateUser(ctx context.Context, sess *models.Session, id int64, form UserForm) error
	ToggleUser(ctx context.Context, sess *models.Session, id int64) error

	// Categories
	Categories(ctx context.Context, sess *models.Session, q listing.Query) (*listing.Page[models.Category], error)
	SaveCategory(ctx context.Context, sess *models.Session, id int64, form CategoryForm) error
	ToggleCategory(ctx context.Context, sess *models.Session, id int64) error

	// Audit log
	AuditLogs(ctx context.Context, sess *models.Session, q listing.Query) (*listing.Page[LogRow], error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	API Backend
}

// UserRow is a user as listed in the admin table.
type UserRow struct {
	models.User
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	IsSelf   bool   `json:"isSelf"`
}

// LogRow is an audit record with its display severity.
type LogRow struct {
	models.AuditLog
	Severity string `json:"severity"`
}

type UserForm struct {
	Name     string `json:"name" form:"name" validate:"notblank"`
	LastName string `json:"lastName" form:"lastName" validate:"notblank"`
	Surname  string `json:"surname" form:"surname"`
	Email    string `json:"email" form:"email" validate:"looseemail"`
}

type CategoryForm struct {
	Name        string `json:"name" form:"name" validate:"categoryname"`
	Description string `json:"description" form:"description" validate:"omitempty,categorydesc"`
	Enabled     *bool  `json:"enabled" form:"enabled"`
}
