// File: handlers/bundle.go
package handlers

import (
	"cursos/services/inflight"
	"cursos/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and what the routes need to gate them.
type HandlerBundle struct {
	Sessions *session.Provider
	InFlight *inflight.Guard

	// Auth endpoints
	LoginPageHandler       gin.HandlerFunc
	LoginHandler           gin.HandlerFunc
	LogoutHandler          gin.HandlerFunc
	RegisterPageHandler    gin.HandlerFunc
	RegisterHandler        gin.HandlerFunc
	RegisterTeacherHandler gin.HandlerFunc
	RequestResetHandler    gin.HandlerFunc
	ResetPageHandler       gin.HandlerFunc
	ResetPasswordHandler   gin.HandlerFunc

	// Catalog and student endpoints
	CatalogHandler   gin.HandlerFunc
	PreviewHandler   gin.HandlerFunc
	EnrollHandler    gin.HandlerFunc
	UnenrollHandler  gin.HandlerFunc
	MyCoursesHandler gin.HandlerFunc
	ViewerHandler    gin.HandlerFunc

	// Admin endpoints
	GetUsersHandler       gin.HandlerFunc
	UpdateUserHandler     gin.HandlerFunc
	ToggleUserHandler     gin.HandlerFunc
	GetCategoriesHandler  gin.HandlerFunc
	SaveCategoryHandler   gin.HandlerFunc
	ToggleCategoryHandler gin.HandlerFunc
	GetLogsHandler        gin.HandlerFunc

	// Teacher endpoints
	GetCoursesHandler           gin.HandlerFunc
	GetCourseHandler            gin.HandlerFunc
	GetTeacherCategoriesHandler gin.HandlerFunc
	SaveCourseHandler           gin.HandlerFunc
	ToggleCourseHandler         gin.HandlerFunc
	GetStudentsHandler          gin.HandlerFunc

	// Content editor endpoints
	GetDraftHandler     gin.HandlerFunc
	SaveContentHandler  gin.HandlerFunc
	DiscardDraftHandler gin.HandlerFunc
	AddModuleHandler    gin.HandlerFunc
	RenameModuleHandler gin.HandlerFunc
	DeleteModuleHandler gin.HandlerFunc
	MoveModuleHandler   gin.HandlerFunc
	AddLessonHandler    gin.HandlerFunc
	EditLessonHandler   gin.HandlerFunc
	DeleteLessonHandler gin.HandlerFunc

	// Profile endpoints
	GetProfileHandler     gin.HandlerFunc
	UpdateProfileHandler  gin.HandlerFunc
	ChangePasswordHandler gin.HandlerFunc

	NavHandler    gin.HandlerFunc
	HealthHandler gin.HandlerFunc
}
