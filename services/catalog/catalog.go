// File: services/catalog/catalog.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cursos/models"
	"cursos/services/backend"
	"cursos/services/listing"
	"cursos/utils"

	"go.uber.org/zap"
)

var cardFields = listing.Fields[Card]{
	"name":        func(c Card) any { return c.Name },
	"description": func(c Card) any { return c.Description },
	"category":    func(c Card) any { return c.Category },
	"teacher":     func(c Card) any { return c.Teacher },
	"duration":    func(c Card) any { return c.Duration },
}

func isStudent(sess *models.Session) bool {
	role, err := sess.Role()
	return err == nil && role == models.RoleStudent
}

func token(sess *models.Session) string {
	if sess == nil {
		return ""
	}
	return sess.Token
}

// allCourses returns the backend's full course list, through the cache when enabled.
func (s *DefaultCatalogService) allCourses(ctx context.Context) ([]models.Course, error) {
	if s.Store != nil && s.CacheTTL > 0 {
		if data, err := s.Store.Get(ctx, utils.CatalogAllKey); err == nil {
			var cached []models.Course
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		} else if !errors.Is(err, utils.ErrCacheMiss) {
			utils.GetLogger().Warn("Catalog cache read failed", zap.Error(err))
		}
	}

	courses, err := s.API.FindAllCourses(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	if s.Store != nil && s.CacheTTL > 0 {
		if data, err := json.Marshal(courses); err == nil {
			if err := s.Store.Set(ctx, utils.CatalogAllKey, data, s.CacheTTL); err != nil {
				utils.GetLogger().Warn("Catalog cache write failed", zap.Error(err))
			}
		}
	}
	return courses, nil
}

// Invalidate drops cached course lists after a write.
func (s *DefaultCatalogService) Invalidate(ctx context.Context) error {
	if s.Store == nil {
		return nil
	}
	return s.Store.DeletePrefix(ctx, utils.CatalogPrefix)
}

func (s *DefaultCatalogService) enrolledIDs(ctx context.Context, sess *models.Session) (map[int64]bool, error) {
	mine, err := s.API.MyCourses(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]bool, len(mine))
	for _, c := range mine {
		ids[c.ID] = true
	}
	return ids, nil
}

func (s *DefaultCatalogService) card(c models.Course, enrolled bool) Card {
	card := Card{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Duration:    c.Duration,
		Category:    c.CategoryLabel(),
		Teacher:     c.TeacherLabel(),
		ImageURL:    ImageURL(s.BaseURL, c.ImageURL),
		PreviewURL:  fmt.Sprintf("/course/%d/preview", c.ID),
		Action:      ActionEnroll,
		ActionURL:   fmt.Sprintf("/courses/%d/enroll", c.ID),
	}
	if enrolled {
		card.Action = ActionView
		card.ActionURL = ViewerPath(c.ID)
		card.CanUnenroll = true
	}
	return card
}

// Catalog lists enabled courses. For a student each card offers view and unenroll
// on enrolled courses and enroll on the rest.
func (s *DefaultCatalogService) Catalog(ctx context.Context, sess *models.Session, q listing.Query) (*CatalogView, error) {
	all, err := s.allCourses(ctx)
	if err != nil {
		return nil, err
	}

	student := isStudent(sess)
	enrolled := map[int64]bool{}
	if student {
		if enrolled, err = s.enrolledIDs(ctx, sess); err != nil {
			return nil, fmt.Errorf("load enrolled courses: %w", err)
		}
	}

	cards := make([]Card, 0, len(all))
	for _, c := range all {
		if !c.Enabled {
			continue
		}
		cards = append(cards, s.card(c, enrolled[c.ID]))
	}
	return &CatalogView{Page: listing.Apply(cards, q, cardFields), Student: student}, nil
}

// Enroll enrolls the student. A 409 from the backend is reported as AlreadyEnrolled.
func (s *DefaultCatalogService) Enroll(ctx context.Context, sess *models.Session, courseID int64) (*EnrollOutcome, error) {
	if !isStudent(sess) {
		return nil, LoginRequiredError{CourseID: courseID}
	}
	err := s.API.Enroll(ctx, sess.Token, courseID)
	switch {
	case err == nil:
		return &EnrollOutcome{
			Toast: models.Toast{Severity: models.SeveritySuccess, Summary: "Enrolled",
				Detail: "Course added to My courses.", Life: utils.ToastLife},
			Next: ViewerPath(courseID),
		}, nil
	case backend.IsConflict(err):
		return &EnrollOutcome{
			Toast: models.Toast{Severity: models.SeverityWarn, Summary: "Notice",
				Detail: "You are already enrolled in this course.", Life: utils.ToastLife},
			Next:            ViewerPath(courseID),
			AlreadyEnrolled: true,
		}, nil
	}
	return nil, fmt.Errorf("enroll in course %d: %w", courseID, err)
}

func (s *DefaultCatalogService) Unenroll(ctx context.Context, sess *models.Session, courseID int64) error {
	if err := s.API.Unenroll(ctx, token(sess), courseID); err != nil {
		return fmt.Errorf("unenroll from course %d: %w", courseID, err)
	}
	return nil
}

// MyCourses lists the student's enrolled courses.
func (s *DefaultCatalogService) MyCourses(ctx context.Context, sess *models.Session, q listing.Query) (*listing.Page[Card], error) {
	mine, err := s.API.MyCourses(ctx, token(sess))
	if err != nil {
		return nil, fmt.Errorf("load my courses: %w", err)
	}
	cards := make([]Card, 0, len(mine))
	for _, c := range mine {
		cards = append(cards, s.card(c, true))
	}
	page := listing.Apply(cards, q, cardFields)
	return &page, nil
}

// content loads a course's document; a missing document is empty.
func (s *DefaultCatalogService) content(ctx context.Context, tok string, courseID int64) (models.ContentDocument, error) {
	doc, err := s.API.GetContent(ctx, tok, courseID)
	if err != nil {
		if backend.IsNotFound(err) {
			return models.ContentDocument{Modules: []models.Module{}}, nil
		}
		return models.ContentDocument{}, err
	}
	doc.Normalize()
	return *doc, nil
}

func lessonTrees(modules []models.Module) []LessonTree {
	out := make([]LessonTree, 0, len(modules))
	for _, m := range modules {
		tree := LessonTree{ID: m.ID, Title: m.Title, Lessons: make([]LessonView, 0, len(m.Lessons))}
		for _, l := range m.Lessons {
			lv := LessonView{Lesson: l}
			if l.Type == models.LessonVideo {
				lv.EmbedURL = YouTubeEmbed(l.URL)
			}
			tree.Lessons = append(tree.Lessons, lv)
		}
		out = append(out, tree)
	}
	return out
}

// Preview shows a course with only its first module unlocked.
func (s *DefaultCatalogService) Preview(ctx context.Context, sess *models.Session, courseID int64) (*PreviewView, error) {
	course, err := s.API.FindCourse(ctx, token(sess), courseID)
	if err != nil {
		return nil, fmt.Errorf("load course %d: %w", courseID, err)
	}
	doc, err := s.content(ctx, token(sess), courseID)
	if err != nil {
		utils.GetLogger().Info("Preview content unavailable", zap.Int64("courseID", courseID), zap.Error(err))
		doc = models.ContentDocument{Modules: []models.Module{}}
	}

	enrolled := false
	if isStudent(sess) {
		if ids, err := s.enrolledIDs(ctx, sess); err == nil {
			enrolled = ids[courseID]
		}
	}

	shown := doc.Modules
	if len(shown) > 1 {
		shown = shown[:1]
	}
	return &PreviewView{
		Course:        s.card(*course, enrolled),
		Syllabus:      course.Syllabus,
		Modules:       lessonTrees(shown),
		LockedModules: len(doc.Modules) - len(shown),
		Enrolled:      enrolled,
	}, nil
}

// Viewer returns the full content of an enrolled course.
func (s *DefaultCatalogService) Viewer(ctx context.Context, sess *models.Session, courseID int64) (*ViewerView, error) {
	course, err := s.API.FindCourse(ctx, token(sess), courseID)
	if err != nil {
		return nil, fmt.Errorf("load course %d: %w", courseID, err)
	}
	doc, err := s.content(ctx, token(sess), courseID)
	if err != nil {
		return nil, fmt.Errorf("load content of course %d: %w", courseID, err)
	}
	return &ViewerView{Course: s.card(*course, true), Modules: lessonTrees(doc.Modules)}, nil
}
