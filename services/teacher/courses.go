// File: services/teacher/courses.go
package teacher

import (
	"context"
	"fmt"
	"strings"

	"cursos/models"
	"cursos/services/catalog"
	"cursos/services/listing"
	"cursos/services/validation"
	"cursos/utils"

	"go.uber.org/zap"
)

var courseFields = listing.Fields[CourseRow]{
	"id":       func(c CourseRow) any { return c.ID },
	"name":     func(c CourseRow) any { return c.Name },
	"category": func(c CourseRow) any { return c.Category },
	"duration": func(c CourseRow) any { return c.Duration },
	"enabled":  func(c CourseRow) any { return c.Enabled },
}

var studentFields = listing.Fields[models.User]{
	"id":       func(u models.User) any { return u.ID },
	"name":     func(u models.User) any { return u.Name },
	"lastName": func(u models.User) any { return u.LastName },
	"email":    func(u models.User) any { return u.Email },
}

// Courses lists only the signed-in teacher's courses, enabled or not.
func (s *DefaultTeacherService) Courses(ctx context.Context, sess *models.Session, q listing.Query) (*listing.Page[CourseRow], error) {
	all, err := s.API.FindAllCourses(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	rows := make([]CourseRow, 0)
	for _, c := range all {
		if !c.OwnedBy(sess.User.ID) {
			continue
		}
		rows = append(rows, CourseRow{
			Course:   c,
			Category: c.CategoryLabel(),
			Image:    catalog.ImageURL(s.BaseURL, c.ImageURL),
		})
	}
	page := listing.Apply(rows, q, courseFields)
	return &page, nil
}

// Course returns one course for the edit form.
func (s *DefaultTeacherService) Course(ctx context.Context, sess *models.Session, id int64) (*models.Course, error) {
	c, err := s.API.FindCourse(ctx, sess.Token, id)
	if err != nil {
		return nil, fmt.Errorf("load course %d: %w", id, err)
	}
	return c, nil
}

// SaveCourse creates (id == 0) or updates a course and refreshes the public catalog.
func (s *DefaultTeacherService) SaveCourse(ctx context.Context, sess *models.Session, id int64, form CourseForm, file *models.Upload) error {
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)
	if err := validation.Struct(form); err != nil {
		return err
	}
	err := s.API.SaveCourse(ctx, sess.Token, id, models.CourseForm{
		Name:        form.Name,
		Description: form.Description,
		Duration:    form.Duration,
		TeacherID:   sess.User.ID,
		CategoryID:  form.CategoryID,
		Syllabus:    form.Syllabus,
		File:        file,
	})
	if err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *DefaultTeacherService) ToggleCourse(ctx context.Context, sess *models.Session, id int64) error {
	if err := s.API.ToggleCourse(ctx, sess.Token, id); err != nil {
		return fmt.Errorf("toggle course %d: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *DefaultTeacherService) invalidate(ctx context.Context) {
	if s.Catalog == nil {
		return
	}
	if err := s.Catalog.Invalidate(ctx); err != nil {
		utils.GetLogger().Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}

// Students lists the users enrolled in a course.
func (s *DefaultTeacherService) Students(ctx context.Context, sess *models.Session, courseID int64, q listing.Query) (*StudentsView, error) {
	course, err := s.API.FindCourse(ctx, sess.Token, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course %d: %w", courseID, err)
	}
	students, err := s.API.CourseStudents(ctx, sess.Token, courseID)
	if err != nil {
		return nil, fmt.Errorf("list students of course %d: %w", courseID, err)
	}
	return &StudentsView{
		CourseName: course.Name,
		Students:   listing.Apply(students, q, studentFields),
	}, nil
}

// Categories returns the active categories offered in the course form.
func (s *DefaultTeacherService) Categories(ctx context.Context, sess *models.Session) ([]models.Category, error) {
	cats, err := s.API.ActiveCategories(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}
	return cats, nil
}
