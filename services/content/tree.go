// File: services/content/tree.go
package content

import (
	"strings"

	"cursos/models"
	"cursos/services/validation"
)

func findModule(doc *models.ContentDocument, moduleID string) (int, error) {
	for i := range doc.Modules {
		if doc.Modules[i].ID == moduleID {
			return i, nil
		}
	}
	return -1, ErrModuleNotFound
}

func findLesson(m *models.Module, lessonID string) (int, error) {
	for i := range m.Lessons {
		if m.Lessons[i].ID == lessonID {
			return i, nil
		}
	}
	return -1, ErrLessonNotFound
}

func addModule(doc *models.ContentDocument, id string, in ModuleInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return err
	}
	doc.Modules = append(doc.Modules, models.Module{ID: id, Title: in.Title, Lessons: []models.Lesson{}})
	return nil
}

func renameModule(doc *models.ContentDocument, moduleID string, in ModuleInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return err
	}
	i, err := findModule(doc, moduleID)
	if err != nil {
		return err
	}
	doc.Modules[i].Title = in.Title
	return nil
}

// deleteModule removes the module and, with it, all its lessons.
func deleteModule(doc *models.ContentDocument, moduleID string) error {
	i, err := findModule(doc, moduleID)
	if err != nil {
		return err
	}
	doc.Modules = append(doc.Modules[:i:i], doc.Modules[i+1:]...)
	return nil
}

func moveModule(doc *models.ContentDocument, moduleID string, index int) error {
	i, err := findModule(doc, moduleID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(doc.Modules) {
		return ErrIndexOutOfRange
	}
	m := doc.Modules[i]
	rest := append(doc.Modules[:i:i], doc.Modules[i+1:]...)
	out := make([]models.Module, 0, len(doc.Modules))
	out = append(out, rest[:index]...)
	out = append(out, m)
	out = append(out, rest[index:]...)
	doc.Modules = out
	return nil
}

// lessonFrom validates in and keeps only the field its type uses.
func lessonFrom(id string, in LessonInput) (models.Lesson, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	if err := validation.Struct(in); err != nil {
		return models.Lesson{}, err
	}
	l := models.Lesson{ID: id, Title: in.Title, Type: in.Type}
	if in.Type.UsesURL() {
		l.URL = in.URL
	} else {
		l.TextContent = in.TextContent
	}
	return l, nil
}

func addLesson(doc *models.ContentDocument, moduleID, id string, in LessonInput) error {
	i, err := findModule(doc, moduleID)
	if err != nil {
		return err
	}
	l, err := lessonFrom(id, in)
	if err != nil {
		return err
	}
	doc.Modules[i].Lessons = append(doc.Modules[i].Lessons, l)
	return nil
}

func editLesson(doc *models.ContentDocument, moduleID, lessonID string, in LessonInput) error {
	i, err := findModule(doc, moduleID)
	if err != nil {
		return err
	}
	j, err := findLesson(&doc.Modules[i], lessonID)
	if err != nil {
		return err
	}
	l, err := lessonFrom(lessonID, in)
	if err != nil {
		return err
	}
	doc.Modules[i].Lessons[j] = l
	return nil
}

// deleteLesson removes one lesson; siblings keep their order and content.
func deleteLesson(doc *models.ContentDocument, moduleID, lessonID string) error {
	i, err := findModule(doc, moduleID)
	if err != nil {
		return err
	}
	m := &doc.Modules[i]
	j, err := findLesson(m, lessonID)
	if err != nil {
		return err
	}
	m.Lessons = append(m.Lessons[:j:j], m.Lessons[j+1:]...)
	return nil
}
