// models/content.go
package models

// LessonType decides which lesson field is meaningful.
type LessonType string

const (
	LessonText  LessonType = "text"
	LessonVideo LessonType = "video"
	LessonImage LessonType = "image"
)

// Valid reports whether t is one of the known lesson types.
func (t LessonType) Valid() bool {
	switch t {
	case LessonText, LessonVideo, LessonImage:
		return true
	}
	return false
}

// UsesURL is true for types rendered from a URL.
func (t LessonType) UsesURL() bool {
	return t == LessonVideo || t == LessonImage
}

// ContentDocument is the per-course curriculum tree, always saved as a whole.
type ContentDocument struct {
	Modules []Module `json:"modules"`
}

type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

type Lesson struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        LessonType `json:"type"`
	URL         string     `json:"url,omitempty"`
	TextContent string     `json:"textContent,omitempty"`
}

// Normalize replaces nil slices with empty ones so the document always
// serializes as {"modules":[]} and every module carries a lessons array.
func (d *ContentDocument) Normalize() {
	if d.Modules == nil {
		d.Modules = []Module{}
	}
	for i := range d.Modules {
		if d.Modules[i].Lessons == nil {
			d.Modules[i].Lessons = []Lesson{}
		}
	}
}

// Clone deep-copies the document.
func (d ContentDocument) Clone() ContentDocument {
	out := ContentDocument{Modules: make([]Module, len(d.Modules))}
	for i, m := range d.Modules {
		m.Lessons = append([]Lesson{}, m.Lessons...)
		out.Modules[i] = m
	}
	return out
}

// LessonCount totals the lessons of every module.
func (d ContentDocument) LessonCount() int {
	n := 0
	for _, m := range d.Modules {
		n += len(m.Lessons)
	}
	return n
}
