// models/course.go
package models

// Course as returned by the backend.
type Course struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Syllabus    string `json:"syllabus,omitempty"`
	Category    *Ref   `json:"category,omitempty"`
	Teacher     *Ref   `json:"teacher,omitempty"`
	TeacherID   int64  `json:"teacherId,omitempty"`
	Enabled     bool   `json:"enabled"`

	// Flattened names sent by the list endpoints.
	CategoryName string `json:"categoryName,omitempty"`
	TeacherName  string `json:"teacherName,omitempty"`
}

// OwnedBy reports whether the course belongs to the given teacher.
func (c Course) OwnedBy(teacherID int64) bool {
	if c.TeacherID != 0 {
		return c.TeacherID == teacherID
	}
	return c.Teacher != nil && c.Teacher.ID == teacherID
}

// CategoryLabel is the category shown on cards, "General" when none.
func (c Course) CategoryLabel() string {
	switch {
	case c.CategoryName != "":
		return c.CategoryName
	case c.Category != nil && c.Category.Name != "":
		return c.Category.Name
	}
	return "General"
}

// TeacherLabel is the teacher name from either the flat or the nested field.
func (c Course) TeacherLabel() string {
	if c.TeacherName != "" {
		return c.TeacherName
	}
	if c.Teacher != nil {
		return c.Teacher.Name
	}
	return ""
}

// CourseForm holds the multipart fields of a course create or update.
type CourseForm struct {
	Name        string
	Description string
	Duration    int
	TeacherID   int64
	CategoryID  int64
	Syllabus    string
	File        *Upload
}

// Upload is an image file forwarded to the backend.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
