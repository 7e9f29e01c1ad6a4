package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"cursos/models"
)

const coursesPath = "/api/courses"

type courseRef struct {
	CourseID int64 `json:"courseId"`
}

// FindAllCourses returns every course, enabled or not. token may be empty.
func (c *Client) FindAllCourses(ctx context.Context, token string) ([]models.Course, error) {
	var out []models.Course
	if err := c.doJSON(ctx, http.MethodGet, coursesPath+"/findAll", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FindCourse(ctx context.Context, token string, id int64) (*models.Course, error) {
	var out models.Course
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/findOne/%d", coursesPath, id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyCourses(ctx context.Context, token string) ([]models.Course, error) {
	var out []models.Course
	if err := c.doJSON(ctx, http.MethodGet, coursesPath+"/my-courses", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Enroll(ctx context.Context, token string, courseID int64) error {
	return c.doJSON(ctx, http.MethodPost, coursesPath+"/enroll", token, courseRef{CourseID: courseID}, nil)
}

func (c *Client) Unenroll(ctx context.Context, token string, courseID int64) error {
	return c.doJSON(ctx, http.MethodPost, coursesPath+"/unenroll", token, courseRef{CourseID: courseID}, nil)
}

// CourseStudents lists the users enrolled in a course.
func (c *Client) CourseStudents(ctx context.Context, token string, courseID int64) ([]models.User, error) {
	var out []models.User
	if err := c.doJSON(ctx, http.MethodPost, coursesPath+"/view-students", token, courseRef{CourseID: courseID}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleCourse enables or disables a course.
func (c *Client) ToggleCourse(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/disable/%d", coursesPath, id), token, nil, nil)
}

// SaveCourse creates a course, or updates it when id is non-zero.
func (c *Client) SaveCourse(ctx context.Context, token string, id int64, form models.CourseForm) error {
	body, contentType, err := courseMultipart(form)
	if err != nil {
		return err
	}
	cl := call{method: http.MethodPost, path: coursesPath + "/save-course", token: token, body: body, contentType: contentType}
	if id != 0 {
		cl.method = http.MethodPut
		cl.path = fmt.Sprintf("%s/update-course/%d", coursesPath, id)
	}
	return c.do(ctx, cl, nil)
}

func courseMultipart(form models.CourseForm) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{"name", form.Name},
		{"description", form.Description},
		{"duration", strconv.Itoa(form.Duration)},
		{"teacherId", strconv.FormatInt(form.TeacherID, 10)},
	}
	if form.CategoryID != 0 {
		fields = append(fields, [2]string{"categoryId", strconv.FormatInt(form.CategoryID, 10)})
	}
	if form.Syllabus != "" {
		fields = append(fields, [2]string{"syllabus", form.Syllabus})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f[0], err)
		}
	}

	if form.File != nil && len(form.File.Data) > 0 {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, form.File.Filename))
		ct := form.File.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(form.File.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
