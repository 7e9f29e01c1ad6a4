package teacher

import (
	"context"

	"cursos/models"
	"cursos/services/listing"
)

// Backend is the part of the REST API the teacher screens use.
type Backend interface {
	FindAllCourses(ctx context.Context, token string) ([]models.Course, error)
	FindCourse(ctx context.Context, token string, id int64) (*models.Course, error)
	SaveCourse(ctx context.Context, token string, id int64, form models.CourseForm) error
	ToggleCourse(ctx context.Context, token string, id int64) error
	CourseStudents(ctx context.Context, token string, courseID int64) ([]models.User, error)
	ActiveCategories(ctx context.Context, token string) ([]models.Category, error)
}

// CatalogCache is invalidated after every course write.
type CatalogCache interface {
	Invalidate(ctx context.Context) error
}

type TeacherService interface {
	Courses(ctx context.Context, sess *models.Session, q listing.Query) (*listing.Page[CourseRow], error)
	Course(ctx context.Context, sess *models.Session, id int64) (*models.Course, error)
	SaveCourse(ctx context.Context, sess *models.Session, id int64, form CourseForm, file *models.Upload) error
	ToggleCourse(ctx context.Context, sess *models.Session, id int64) error
	Students(ctx context.Context, sess *models.Session, courseID int64, q listing.Query) (*StudentsView, error)
	Categories(ctx context.Context, sess *models.Session) ([]models.Category, error)
}

// DefaultTeacherService is the production implementation.
type DefaultTeacherService struct {
	API     Backend
	Catalog CatalogCache
	BaseURL string
}

// CourseRow is one of the teacher's courses in the management table.
type CourseRow struct {
	models.Course
	Category string `json:"categoryLabel"`
	Image    string `json:"image"`
}

// CourseForm holds the editable course fields; the teacher id comes from the session.
type CourseForm struct {
	Name        string `json:"name" form:"name" validate:"notblank"`
	Description string `json:"description" form:"description" validate:"notblank"`
	Duration    int    `json:"duration" form:"duration" validate:"gt=0"`
	CategoryID  int64  `json:"categoryId" form:"categoryId"`
	Syllabus    string `json:"syllabus" form:"syllabus"`
}

type StudentsView struct {
	CourseName string                    `json:"courseName"`
	Students   listing.Page[models.User] `json:"students"`
}
