package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"cursos/models"
	"cursos/services/backend"
	"cursos/services/session"
	"cursos/services/validation"
	"cursos/utils"
)

// fakeBackend stores the saved document as JSON, the way the backend would.
type fakeBackend struct {
	stored  []byte
	saves   int
	loadErr error
}

func (f *fakeBackend) FindCourse(_ context.Context, _ string, id int64) (*models.Course, error) {
	return &models.Course{ID: id, Name: "Go basics"}, nil
}

func (f *fakeBackend) GetContent(context.Context, string, int64) (*models.ContentDocument, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.stored == nil {
		return nil, &backend.APIError{Status: http.StatusNotFound}
	}
	var doc models.ContentDocument
	if err := json.Unmarshal(f.stored, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (f *fakeBackend) SaveContent(_ context.Context, _ string, _ int64, doc models.ContentDocument) error {
	doc.Normalize()
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	f.stored = data
	f.saves++
	return nil
}

func newEditor() (*DefaultEditorService, *fakeBackend) {
	fb := &fakeBackend{}
	n := 0
	return &DefaultEditorService{
		API:   fb,
		Store: utils.NewMemoryStore(),
		TTL:   time.Hour,
		NewID: func() string { n++; return fmt.Sprintf("id%d", n) },
	}, fb
}

var teacher = &models.Session{Token: "tok", User: models.SessionUser{ID: 42, Rol: models.RoleRef{RoleEnum: "TEACHER"}}}

func TestEmptyDocumentRoundTrip(t *testing.T) {
	ed, fb := newEditor()
	ctx := context.Background()

	d, err := ed.Load(ctx, teacher, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.CourseName != "Go basics" || len(d.Document.Modules) != 0 {
		t.Fatalf("draft = %+v", d)
	}
	if _, err := ed.Save(ctx, teacher, 1); err != nil {
		t.Fatalf("save: %v", err)
	}
	if string(fb.stored) != `{"modules":[]}` {
		t.Fatalf("stored = %s", fb.stored)
	}

	d, err = ed.Load(ctx, teacher, 1)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if d.Document.Modules == nil || len(d.Document.Modules) != 0 {
		t.Fatalf("reloaded modules = %#v", d.Document.Modules)
	}
}

func TestDeleteModuleCascadesAndDeleteLessonKeepsSiblings(t *testing.T) {
	ed, fb := newEditor()
	ctx := context.Background()

	mustDraft := func(d *Draft, err error) *Draft {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return d
	}
	// NewID hands out id1, id2, ... in call order.
	mustDraft(ed.AddModule(ctx, teacher, 1, ModuleInput{Title: "One"}))
	mustDraft(ed.AddModule(ctx, teacher, 1, ModuleInput{Title: "Two"}))
	mustDraft(ed.AddLesson(ctx, teacher, 1, "id1", LessonInput{Title: "a", Type: models.LessonText, TextContent: "A"}))
	mustDraft(ed.AddLesson(ctx, teacher, 1, "id2", LessonInput{Title: "b", Type: models.LessonText, TextContent: "B"}))
	mustDraft(ed.AddLesson(ctx, teacher, 1, "id2", LessonInput{Title: "c", Type: models.LessonVideo, URL: "https://youtu.be/x"}))
	mustDraft(ed.AddLesson(ctx, teacher, 1, "id2", LessonInput{Title: "d", Type: models.LessonImage, URL: "/img.png"}))

	mustDraft(ed.DeleteModule(ctx, teacher, 1, "id1"))
	d := mustDraft(ed.DeleteLesson(ctx, teacher, 1, "id2", "id5"))

	if len(d.Document.Modules) != 1 || d.Document.Modules[0].ID != "id2" {
		t.Fatalf("modules = %+v", d.Document.Modules)
	}
	lessons := d.Document.Modules[0].Lessons
	if len(lessons) != 2 || lessons[0].ID != "id4" || lessons[1].ID != "id6" {
		t.Fatalf("lessons = %+v", lessons)
	}
	if lessons[0].TextContent != "B" || lessons[1].URL != "/img.png" {
		t.Fatalf("sibling content changed: %+v", lessons)
	}

	if _, err := ed.Save(ctx, teacher, 1); err != nil {
		t.Fatal(err)
	}
	var saved models.ContentDocument
	if err := json.Unmarshal(fb.stored, &saved); err != nil {
		t.Fatal(err)
	}
	if saved.LessonCount() != 2 {
		t.Fatalf("saved document kept %d lessons, want 2", saved.LessonCount())
	}
	for _, m := range saved.Modules {
		for _, l := range m.Lessons {
			if l.ID == "id3" {
				t.Fatal("lesson of deleted module was saved")
			}
		}
	}
}

func TestLessonTypeClearsUnusedField(t *testing.T) {
	ed, _ := newEditor()
	ctx := context.Background()
	if _, err := ed.AddModule(ctx, teacher, 1, ModuleInput{Title: "M"}); err != nil {
		t.Fatal(err)
	}
	if _, err := ed.AddLesson(ctx, teacher, 1, "id1", LessonInput{Title: "L", Type: models.LessonText, TextContent: "hi", URL: "http://x"}); err != nil {
		t.Fatal(err)
	}
	d, err := ed.EditLesson(ctx, teacher, 1, "id1", "id2", LessonInput{Title: "L", Type: models.LessonVideo, TextContent: "hi", URL: "http://v"})
	if err != nil {
		t.Fatal(err)
	}
	l := d.Document.Modules[0].Lessons[0]
	if l.Type != models.LessonVideo || l.URL != "http://v" || l.TextContent != "" {
		t.Fatalf("lesson = %+v", l)
	}
}

func TestBlankTitlesRejected(t *testing.T) {
	ed, _ := newEditor()
	ctx := context.Background()
	_, err := ed.AddModule(ctx, teacher, 1, ModuleInput{Title: "   "})
	var fe validation.FieldErrors
	if !errors.As(err, &fe) || fe["title"] == "" {
		t.Fatalf("err = %v, want title error", err)
	}
	d, _ := ed.Load(ctx, teacher, 1)
	if len(d.Document.Modules) != 0 || d.Dirty {
		t.Fatalf("rejected edit changed the draft: %+v", d)
	}

	d, err = ed.AddModule(ctx, teacher, 1, ModuleInput{Title: "M"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = ed.AddLesson(ctx, teacher, 1, d.Document.Modules[0].ID, LessonInput{Title: "L", Type: "audio"})
	if !errors.As(err, &fe) || fe["type"] == "" {
		t.Fatalf("err = %v, want type error", err)
	}
}

func TestMoveModule(t *testing.T) {
	ed, _ := newEditor()
	ctx := context.Background()
	for _, title := range []string{"A", "B", "C"} {
		if _, err := ed.AddModule(ctx, teacher, 1, ModuleInput{Title: title}); err != nil {
			t.Fatal(err)
		}
	}
	d, err := ed.MoveModule(ctx, teacher, 1, "id3", 0)
	if err != nil {
		t.Fatal(err)
	}
	var got string
	for _, m := range d.Document.Modules {
		got += m.Title
	}
	if got != "CAB" {
		t.Fatalf("order = %s, want CAB", got)
	}
	if _, err := ed.MoveModule(ctx, teacher, 1, "id3", 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := ed.RenameModule(ctx, teacher, 1, "nope", ModuleInput{Title: "x"}); !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("err = %v, want ErrModuleNotFound", err)
	}
}

func TestDiscardAndSignOutDropDrafts(t *testing.T) {
	ed, _ := newEditor()
	ctx := context.Background()
	if _, err := ed.AddModule(ctx, teacher, 1, ModuleInput{Title: "M"}); err != nil {
		t.Fatal(err)
	}
	if err := ed.Discard(ctx, teacher, 1); err != nil {
		t.Fatal(err)
	}
	d, _ := ed.Load(ctx, teacher, 1)
	if len(d.Document.Modules) != 0 {
		t.Fatal("discard kept local changes")
	}

	if _, err := ed.AddModule(ctx, teacher, 2, ModuleInput{Title: "M"}); err != nil {
		t.Fatal(err)
	}
	ed.DropUserDrafts(session.Event{Kind: session.EventCleared, Previous: teacher, Ctx: ctx})
	if _, err := ed.Store.Get(ctx, draftKey(teacher.User.ID, 2)); !errors.Is(err, utils.ErrCacheMiss) {
		t.Fatalf("draft survived sign out: %v", err)
	}
}

func TestLoadFailureIsNotAnEmptyDraft(t *testing.T) {
	ed, fb := newEditor()
	ctx := context.Background()
	fb.stored = []byte(`{"modules":[{"id":"m1","title":"Intro","lessons":[]}]}`)
	fb.loadErr = &backend.APIError{Status: http.StatusInternalServerError, Message: "boom"}

	if _, err := ed.Load(ctx, teacher, 1); backend.StatusOf(err) != http.StatusInternalServerError {
		t.Fatalf("load err = %v, want backend 500", err)
	}
	if _, err := ed.Store.Get(ctx, draftKey(teacher.User.ID, 1)); !errors.Is(err, utils.ErrCacheMiss) {
		t.Fatalf("draft written after failed load: %v", err)
	}
	if _, err := ed.AddModule(ctx, teacher, 1, ModuleInput{Title: "M"}); err == nil {
		t.Fatal("mutation on a failed load succeeded")
	}
	if _, err := ed.Save(ctx, teacher, 1); err == nil {
		t.Fatal("save after failed load succeeded")
	}
	if fb.saves != 0 {
		t.Fatalf("backend document overwritten %d times", fb.saves)
	}

	fb.loadErr = nil
	d, err := ed.Load(ctx, teacher, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Document.Modules) != 1 || d.Document.Modules[0].Title != "Intro" {
		t.Fatalf("modules = %+v", d.Document.Modules)
	}
}
