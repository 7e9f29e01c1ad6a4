// File: handlers/teacher.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"cursos/models"
	"cursos/services/listing"
	"cursos/services/session"
	"cursos/services/teacher"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	teacherRows   = 10
	maxUploadSize = 10 << 20
)

// TeacherHandler serves the teacher's course management screens.
type TeacherHandler struct {
	Responder
	Teacher  teacher.TeacherService
	Sessions *session.Provider
}

func NewTeacherHandler(r Responder, svc teacher.TeacherService, sessions *session.Provider) *TeacherHandler {
	return &TeacherHandler{Responder: r, Teacher: svc, Sessions: sessions}
}

func (h *TeacherHandler) coursesView(c *gin.Context, t *models.Toast) {
	page, err := h.Teacher.Courses(c.Request.Context(), h.Sessions.Get(c), listing.ParseQuery(c.Request.URL.Query(), teacherRows))
	if err != nil {
		h.fail(c, err, "Could not load your courses.")
		return
	}
	h.render(c, http.StatusOK, View{Data: page, Toast: t})
}

// GetCoursesHandler lists the signed-in teacher's courses.
func (h *TeacherHandler) GetCoursesHandler(c *gin.Context) {
	h.coursesView(c, nil)
}

// GetCourseHandler returns one course with the active categories for the edit form.
func (h *TeacherHandler) GetCourseHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	sess := h.Sessions.Get(c)
	course, err := h.Teacher.Course(c.Request.Context(), sess, id)
	if err != nil {
		h.fail(c, err, "Could not load the course.")
		return
	}
	cats, err := h.Teacher.Categories(c.Request.Context(), sess)
	if err != nil {
		h.fail(c, err, "Could not load categories.")
		return
	}
	h.render(c, http.StatusOK, View{Data: gin.H{"course": course, "categories": cats}})
}

func (h *TeacherHandler) GetCategoriesHandler(c *gin.Context) {
	cats, err := h.Teacher.Categories(c.Request.Context(), h.Sessions.Get(c))
	if err != nil {
		h.fail(c, err, "Could not load categories.")
		return
	}
	h.render(c, http.StatusOK, View{Data: cats})
}

// readUpload returns the optional "file" part of a multipart course form.
func readUpload(c *gin.Context) (*models.Upload, error) {
	fileHeader, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxUploadSize {
		return nil, errors.New("file exceeds 10 MB")
	}
	return &models.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// SaveCourseHandler creates (POST) or updates (PUT /:id) a course from a multipart form.
func (h *TeacherHandler) SaveCourseHandler(c *gin.Context) {
	logger := getLogger(c)
	var id int64
	if c.Param("id") != "" {
		var ok bool
		if id, ok = idParam(c, "id"); !ok {
			return
		}
	}
	var form teacher.CourseForm
	if !bind(c, &form) {
		return
	}
	file, err := readUpload(c)
	if err != nil {
		logger.Info("Rejected course image", zap.Error(err))
		h.render(c, http.StatusBadRequest, View{Errors: map[string]string{"file": err.Error()}})
		return
	}
	if err := h.Teacher.SaveCourse(c.Request.Context(), h.Sessions.Get(c), id, form, file); err != nil {
		h.fail(c, err, "Could not save the course.")
		return
	}
	detail := "Course created."
	if id != 0 {
		detail = "Course updated."
	}
	h.coursesView(c, toast(models.SeveritySuccess, "Success", detail))
}

func (h *TeacherHandler) ToggleCourseHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if !h.requireConfirm(c, "Confirm", "Do you want to change the status of this course?") {
		return
	}
	if err := h.Teacher.ToggleCourse(c.Request.Context(), h.Sessions.Get(c), id); err != nil {
		h.fail(c, err, "Could not change the course status.")
		return
	}
	h.coursesView(c, toast(models.SeveritySuccess, "Success", "Course status updated."))
}

// GetStudentsHandler lists the students enrolled in a course.
func (h *TeacherHandler) GetStudentsHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	view, err := h.Teacher.Students(c.Request.Context(), h.Sessions.Get(c), id, listing.ParseQuery(c.Request.URL.Query(), teacherRows))
	if err != nil {
		h.fail(c, err, "Could not load the enrolled students.")
		return
	}
	h.render(c, http.StatusOK, View{Data: view})
}
