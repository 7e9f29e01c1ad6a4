package catalog

import (
	"context"
	"time"

	"cursos/models"
	"cursos/services/listing"
	"cursos/utils"
)

// Backend is the part of the REST API the catalog uses.
type Backend interface {
	FindAllCourses(ctx context.Context, token string) ([]models.Course, error)
	FindCourse(ctx context.Context, token string, id int64) (*models.Course, error)
	MyCourses(ctx context.Context, token string) ([]models.Course, error)
	Enroll(ctx context.Context, token string, courseID int64) error
	Unenroll(ctx context.Context, token string, courseID int64) error
	GetContent(ctx context.Context, token string, courseID int64) (*models.ContentDocument, error)
}

// CatalogService serves the public catalog and the student's course pages.
type CatalogService interface {
	Catalog(ctx context.Context, sess *models.Session, q listing.Query) (*CatalogView, error)
	Preview(ctx context.Context, sess *models.Session, courseID int64) (*PreviewView, error)
	Enroll(ctx context.Context, sess *models.Session, courseID int64) (*EnrollOutcome, error)
	Unenroll(ctx context.Context, sess *models.Session, courseID int64) error
	MyCourses(ctx context.Context, sess *models.Session, q listing.Query) (*listing.Page[Card], error)
	Viewer(ctx context.Context, sess *models.Session, courseID int64) (*ViewerView, error)
	Invalidate(ctx context.Context) error
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	API      Backend
	Store    utils.Store
	CacheTTL time.Duration
	BaseURL  string
}

// Card actions.
const (
	ActionEnroll = "enroll"
	ActionView   = "view"
)

// Card is one course in a catalog grid.
type Card struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Category    string `json:"category"`
	Teacher     string `json:"teacher"`
	ImageURL    string `json:"imageUrl"`
	PreviewURL  string `json:"previewUrl"`
	Action      string `json:"action"`
	ActionURL   string `json:"actionUrl"`
	CanUnenroll bool   `json:"canUnenroll"`
}

type CatalogView struct {
	Page    listing.Page[Card] `json:"page"`
	Student bool               `json:"student"`
}

// PreviewView shows the first module and how many are locked behind enrollment.
type PreviewView struct {
	Course        Card         `json:"course"`
	Syllabus      string       `json:"syllabus,omitempty"`
	Modules       []LessonTree `json:"modules"`
	LockedModules int          `json:"lockedModules"`
	Enrolled      bool         `json:"enrolled"`
}

type ViewerView struct {
	Course  Card         `json:"course"`
	Modules []LessonTree `json:"modules"`
}

// LessonTree is a module with its lessons prepared for display.
type LessonTree struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Lessons []LessonView `json:"lessons"`
}

type LessonView struct {
	models.Lesson
	EmbedURL string `json:"embedUrl,omitempty"`
}

// EnrollOutcome is the result of an enrollment attempt. AlreadyEnrolled is not an error.
type EnrollOutcome struct {
	Toast           models.Toast `json:"toast"`
	Next            string       `json:"next"`
	AlreadyEnrolled bool         `json:"alreadyEnrolled"`
}
