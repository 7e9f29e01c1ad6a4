package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"cursos/models"
	"cursos/services/listing"
	"cursos/services/validation"
)

type fakeBackend struct {
	calls []string
	users []models.User
	logs  []models.AuditLog
	saved *models.Category
}

func (f *fakeBackend) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeBackend) ListUsers(context.Context, string) ([]models.User, error) {
	f.record("ListUsers")
	return f.users, nil
}

func (f *fakeBackend) UpdateUser(context.Context, string, int64, models.UserUpdate) error {
	f.record("UpdateUser")
	return nil
}

func (f *fakeBackend) ToggleUser(context.Context, string, int64) error {
	f.record("ToggleUser")
	return nil
}

func (f *fakeBackend) ListCategories(context.Context, string) ([]models.Category, error) {
	f.record("ListCategories")
	return nil, nil
}

func (f *fakeBackend) CreateCategory(_ context.Context, _ string, c models.Category) error {
	f.record("CreateCategory")
	f.saved = &c
	return nil
}

func (f *fakeBackend) UpdateCategory(_ context.Context, _ string, c models.Category) error {
	f.record("UpdateCategory")
	f.saved = &c
	return nil
}

func (f *fakeBackend) ToggleCategory(context.Context, string, int64) error {
	f.record("ToggleCategory")
	return nil
}

func (f *fakeBackend) AuditLogs(context.Context, string) ([]models.AuditLog, error) {
	f.record("AuditLogs")
	return f.logs, nil
}

var admin = &models.Session{Token: "tok", User: models.SessionUser{ID: 1, Rol: models.RoleRef{RoleEnum: "ADMIN"}}}

func TestAdminCannotToggleSelf(t *testing.T) {
	fb := &fakeBackend{}
	svc := &DefaultAdminService{API: fb}
	if err := svc.ToggleUser(context.Background(), admin, 1); !errors.Is(err, ErrSelfToggle) {
		t.Fatalf("err = %v, want ErrSelfToggle", err)
	}
	if len(fb.calls) != 0 {
		t.Fatalf("backend called: %v", fb.calls)
	}
	if err := svc.ToggleUser(context.Background(), admin, 2); err != nil {
		t.Fatalf("toggle other user: %v", err)
	}
	if len(fb.calls) != 1 || fb.calls[0] != "ToggleUser" {
		t.Fatalf("calls = %v", fb.calls)
	}
}

func TestUsersMarksSelf(t *testing.T) {
	fb := &fakeBackend{users: []models.User{
		{ID: 1, Name: "Root", Rol: models.RoleRef{RoleEnum: "ADMIN"}},
		{ID: 2, Name: "Ana", LastName: "Lopez", Rol: models.RoleRef{RoleEnum: "STUDENT"}},
	}}
	svc := &DefaultAdminService{API: fb}
	page, err := svc.Users(context.Background(), admin, listing.Query{Rows: 10})
	if err != nil {
		t.Fatal(err)
	}
	if !page.Items[0].IsSelf || page.Items[1].IsSelf {
		t.Fatalf("IsSelf flags wrong: %+v", page.Items)
	}
	if page.Items[1].FullName != "Ana Lopez" {
		t.Errorf("full name = %q", page.Items[1].FullName)
	}
}

func TestAuditLogsNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	fb := &fakeBackend{logs: []models.AuditLog{
		{ID: 1, Action: "CREATE", Timestamp: models.Timestamp{Time: base}},
		{ID: 2, Action: "LOGIN_FAILED", Timestamp: models.Timestamp{Time: base.Add(2 * time.Hour)}},
		{ID: 3, Action: "UPDATE", Timestamp: models.Timestamp{Time: base.Add(time.Hour)}},
	}}
	svc := &DefaultAdminService{API: fb}
	page, err := svc.AuditLogs(context.Background(), admin, listing.Query{Rows: 15})
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		id       int64
		severity string
	}{{2, "danger"}, {3, "warning"}, {1, "success"}}
	for i, w := range want {
		if page.Items[i].ID != w.id || page.Items[i].Severity != w.severity {
			t.Fatalf("row %d = %+v, want %+v", i, page.Items[i], w)
		}
	}
}

func TestSaveCategoryValidatesFirst(t *testing.T) {
	fb := &fakeBackend{}
	svc := &DefaultAdminService{API: fb}
	err := svc.SaveCategory(context.Background(), admin, 0, CategoryForm{Name: "Go"})
	var fe validation.FieldErrors
	if !errors.As(err, &fe) || fe["name"] == "" {
		t.Fatalf("err = %v, want name error", err)
	}
	if len(fb.calls) != 0 {
		t.Fatalf("backend called: %v", fb.calls)
	}

	if err := svc.SaveCategory(context.Background(), admin, 0, CategoryForm{Name: "Programación"}); err != nil {
		t.Fatal(err)
	}
	if fb.saved == nil || !fb.saved.Enabled || fb.calls[0] != "CreateCategory" {
		t.Fatalf("saved = %+v calls = %v", fb.saved, fb.calls)
	}
}
