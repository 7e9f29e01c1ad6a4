package content

import (
	"context"
	"time"

	"cursos/models"
	"cursos/utils"
)

// Backend is the part of the REST API the editor uses.
type Backend interface {
	FindCourse(ctx context.Context, token string, id int64) (*models.Course, error)
	GetContent(ctx context.Context, token string, courseID int64) (*models.ContentDocument, error)
	SaveContent(ctx context.Context, token string, courseID int64, doc models.ContentDocument) error
}

// EditorService edits a course's module/lesson tree as a draft and saves it whole.
type EditorService interface {
	Load(ctx context.Context, sess *models.Session, courseID int64) (*Draft, error)
	Discard(ctx context.Context, sess *models.Session, courseID int64) error
	Save(ctx context.Context, sess *models.Session, courseID int64) (*Draft, error)

	AddModule(ctx context.Context, sess *models.Session, courseID int64, in ModuleInput) (*Draft, error)
	RenameModule(ctx context.Context, sess *models.Session, courseID int64, moduleID string, in ModuleInput) (*Draft, error)
	DeleteModule(ctx context.Context, sess *models.Session, courseID int64, moduleID string) (*Draft, error)
	MoveModule(ctx context.Context, sess *models.Session, courseID int64, moduleID string, index int) (*Draft, error)

	AddLesson(ctx context.Context, sess *models.Session, courseID int64, moduleID string, in LessonInput) (*Draft, error)
	EditLesson(ctx context.Context, sess *models.Session, courseID int64, moduleID, lessonID string, in LessonInput) (*Draft, error)
	DeleteLesson(ctx context.Context, sess *models.Session, courseID int64, moduleID, lessonID string) (*Draft, error)
}

// DefaultEditorService keeps drafts in the shared Store.
type DefaultEditorService struct {
	API   Backend
	Store utils.Store
	TTL   time.Duration
	NewID func() string

	locks keyedMutex
}

// Draft is the working copy of a course's content.
type Draft struct {
	CourseID   int64                  `json:"courseId"`
	CourseName string                 `json:"courseName"`
	Document   models.ContentDocument `json:"document"`
	BaseHash   string                 `json:"baseHash"`
	Dirty      bool                   `json:"dirty"`
	LoadedAt   time.Time              `json:"loadedAt"`
}

type ModuleInput struct {
	Title string `json:"title" form:"title" validate:"notblank"`
}

type LessonInput struct {
	Title       string            `json:"title" form:"title" validate:"notblank"`
	Type        models.LessonType `json:"type" form:"type" validate:"oneof=text video image"`
	URL         string            `json:"url" form:"url"`
	TextContent string            `json:"textContent" form:"textContent"`
}
