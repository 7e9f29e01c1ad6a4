package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cursos/models"
	"cursos/services/admin"
	"cursos/services/auth"
	"cursos/services/backend"
	"cursos/services/content"
	"cursos/services/session"
	"cursos/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAdminAPI struct {
	toggles []int64
}

func (f *fakeAdminAPI) ListUsers(context.Context, string) ([]models.User, error) {
	return []models.User{{ID: 1, Name: "Root", Rol: models.RoleRef{RoleEnum: "ADMIN"}}, {ID: 2, Name: "Ana"}}, nil
}
func (f *fakeAdminAPI) UpdateUser(context.Context, string, int64, models.UserUpdate) error { return nil }
func (f *fakeAdminAPI) ToggleUser(_ context.Context, _ string, id int64) error {
	f.toggles = append(f.toggles, id)
	return nil
}
func (f *fakeAdminAPI) ListCategories(context.Context, string) ([]models.Category, error) {
	return nil, nil
}
func (f *fakeAdminAPI) CreateCategory(context.Context, string, models.Category) error { return nil }
func (f *fakeAdminAPI) UpdateCategory(context.Context, string, models.Category) error { return nil }
func (f *fakeAdminAPI) ToggleCategory(context.Context, string, int64) error          { return nil }
func (f *fakeAdminAPI) AuditLogs(context.Context, string) ([]models.AuditLog, error) {
	return nil, nil
}

type fakeAuthAPI struct {
	logins  int
	enrolls []int64
}

func (f *fakeAuthAPI) Login(_ context.Context, creds backend.Credentials) (*models.Session, error) {
	f.logins++
	if creds.Password != "Secret1!" {
		return nil, &backend.APIError{Status: http.StatusUnauthorized}
	}
	return &models.Session{Token: "jwt", User: models.SessionUser{ID: 3, Name: "Ana", Email: creds.Email,
		Rol: models.RoleRef{RoleEnum: models.RoleEnumStudent}}}, nil
}
func (f *fakeAuthAPI) Register(context.Context, models.Registration) error                { return nil }
func (f *fakeAuthAPI) RegisterTeacher(context.Context, string, models.Registration) error { return nil }
func (f *fakeAuthAPI) RequestPasswordReset(context.Context, string) error                 { return nil }
func (f *fakeAuthAPI) ResetPassword(context.Context, backend.PasswordReset) error         { return nil }
func (f *fakeAuthAPI) Enroll(_ context.Context, _ string, id int64) error {
	f.enrolls = append(f.enrolls, id)
	return nil
}

func newProvider(t *testing.T) (*session.Provider, *session.Codec) {
	t.Helper()
	codec, err := session.NewCodec("handler-secret", "user", 3600)
	if err != nil {
		t.Fatal(err)
	}
	return session.NewProvider(codec, session.Options{CookieName: "user", MaxAge: 3600}), codec
}

func adminCookie(t *testing.T, codec *session.Codec) *http.Cookie {
	t.Helper()
	value, err := codec.Encode(models.Session{Token: "admin-token", User: models.SessionUser{ID: 1,
		Rol: models.RoleRef{RoleEnum: models.RoleEnumAdmin}}})
	if err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: "user", Value: value}
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) View {
	t.Helper()
	var v View
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func newAdminEngine(t *testing.T) (*gin.Engine, *fakeAdminAPI, *http.Cookie) {
	provider, codec := newProvider(t)
	api := &fakeAdminAPI{}
	h := NewAdminHandler(Responder{}, &admin.DefaultAdminService{API: api}, provider)
	r := gin.New()
	r.DELETE("/admin/users/:id", h.ToggleUserHandler)
	return r, api, adminCookie(t, codec)
}

func TestAdminCannotToggleSelf(t *testing.T) {
	r, api, cookie := newAdminEngine(t)
	req := httptest.NewRequest(http.MethodDelete, "/admin/users/1?confirm=true", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if v := decodeView(t, w); v.Toast == nil || v.Toast.Severity != models.SeverityWarn {
		t.Fatalf("view = %+v", v)
	}
	if len(api.toggles) != 0 {
		t.Fatalf("backend called %v", api.toggles)
	}
}

func TestToggleRequiresConfirmation(t *testing.T) {
	r, api, cookie := newAdminEngine(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/2?active=false", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusPreconditionRequired {
		t.Fatalf("status = %d, want 428", w.Code)
	}
	v := decodeView(t, w)
	if v.Confirm == nil || !strings.Contains(v.Confirm.Message, "activate") {
		t.Fatalf("view = %+v", v)
	}
	if len(api.toggles) != 0 {
		t.Fatal("backend called before confirmation")
	}

	req = httptest.NewRequest(http.MethodDelete, "/admin/users/2?confirm=true", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if len(api.toggles) != 1 || api.toggles[0] != 2 {
		t.Fatalf("toggles = %v", api.toggles)
	}
}

func newAuthEngine(t *testing.T) (*gin.Engine, *fakeAuthAPI) {
	provider, _ := newProvider(t)
	api := &fakeAuthAPI{}
	h := NewAuthHandler(Responder{}, &auth.DefaultAuthService{API: api}, provider)
	r := gin.New()
	r.POST("/login", h.LoginHandler)
	return r, api
}

func postLogin(r *gin.Engine, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginNavigationPriority(t *testing.T) {
	const body = `{"email":"a@b.com","password":"Secret1!"}`
	tests := []struct {
		target string
		want   string
	}{
		{"/login", "/student/my-courses"},
		{"/login?redirect=/courses", "/courses"},
		{"/login?redirect=//evil.example", "/student/my-courses"},
		{"/login?redirect=/courses&enrollCourseId=5", "/student/course/5/view"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			r, _ := newAuthEngine(t)
			w := postLogin(r, tt.target, body)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if v := decodeView(t, w); v.Redirect != tt.want {
				t.Fatalf("redirect = %q, want %q", v.Redirect, tt.want)
			}
			if !strings.Contains(w.Header().Get("Set-Cookie"), "user=") {
				t.Fatal("session cookie not written")
			}
		})
	}
}

func TestLoginValidationSkipsBackend(t *testing.T) {
	r, api := newAuthEngine(t)
	w := postLogin(r, "/login", `{"email":"not-an-email","password":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	v := decodeView(t, w)
	if v.Errors["email"] == "" || v.Errors["password"] == "" {
		t.Fatalf("errors = %v", v.Errors)
	}
	if api.logins != 0 {
		t.Fatal("backend called with invalid input")
	}
}

func TestLoginRejected(t *testing.T) {
	r, _ := newAuthEngine(t)
	w := postLogin(r, "/login", `{"email":"a@b.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if v := decodeView(t, w); v.Toast == nil || v.Toast.Detail != "Invalid credentials." {
		t.Fatalf("view = %+v", v)
	}
	if w.Header().Get("Set-Cookie") != "" {
		t.Fatal("session written on failed login")
	}
}

func TestMenuPerRole(t *testing.T) {
	for _, role := range []models.Role{models.RoleAnonymous, models.RoleAdmin, models.RoleTeacher, models.RoleStudent} {
		menu := Menu(role)
		if len(menu) == 0 {
			t.Fatalf("%v: empty menu", role)
		}
		hasLogout := false
		for _, item := range menu {
			if item.Path == "/logout" {
				hasLogout = true
			}
		}
		if hasLogout == (role == models.RoleAnonymous) {
			t.Fatalf("%v: logout entry = %v", role, hasLogout)
		}
	}
}

type fakeContentAPI struct {
	status int
	saves  int
}

func (f *fakeContentAPI) FindCourse(_ context.Context, _ string, id int64) (*models.Course, error) {
	return &models.Course{ID: id, Name: "Go basics"}, nil
}
func (f *fakeContentAPI) GetContent(context.Context, string, int64) (*models.ContentDocument, error) {
	return nil, &backend.APIError{Status: f.status, Message: "database down"}
}
func (f *fakeContentAPI) SaveContent(context.Context, string, int64, models.ContentDocument) error {
	f.saves++
	return nil
}

func teacherCookie(t *testing.T, codec *session.Codec) *http.Cookie {
	t.Helper()
	value, err := codec.Encode(models.Session{Token: "teacher-token", User: models.SessionUser{ID: 7,
		Rol: models.RoleRef{RoleEnum: models.RoleEnumTeacher}}})
	if err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: "user", Value: value}
}

func TestContentLoadBackendFailure(t *testing.T) {
	tests := []struct {
		name    string
		backend int
		want    int
	}{
		{"server error", http.StatusInternalServerError, http.StatusBadGateway},
		{"unavailable", http.StatusServiceUnavailable, http.StatusBadGateway},
		{"forbidden", http.StatusForbidden, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, codec := newProvider(t)
			api := &fakeContentAPI{status: tt.backend}
			store := utils.NewMemoryStore()
			editor := &content.DefaultEditorService{API: api, Store: store, TTL: time.Hour}
			h := NewContentHandler(Responder{}, editor, provider)
			r := gin.New()
			r.GET("/teacher/course/:id/content", h.GetDraftHandler)
			r.POST("/teacher/course/:id/content", h.SaveHandler)

			for _, method := range []string{http.MethodGet, http.MethodPost} {
				req := httptest.NewRequest(method, "/teacher/course/5/content", nil)
				req.AddCookie(teacherCookie(t, codec))
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				if w.Code != tt.want {
					t.Fatalf("%s status = %d, want %d", method, w.Code, tt.want)
				}
				if v := decodeView(t, w); v.Toast == nil || v.Toast.Severity != models.SeverityError || v.Data != nil {
					t.Fatalf("%s view = %+v", method, v)
				}
			}
			if api.saves != 0 {
				t.Fatalf("saved %d times over unreadable content", api.saves)
			}
			if _, err := store.Get(context.Background(), "draft:7:5"); err == nil {
				t.Fatal("draft stored after a failed load")
			}
		})
	}
}

func TestRegisterPage(t *testing.T) {
	provider, _ := newProvider(t)
	h := NewAuthHandler(Responder{}, &auth.DefaultAuthService{API: &fakeAuthAPI{}}, provider)
	r := gin.New()
	r.GET("/register", h.RegisterPageHandler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/register", nil))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), models.RoleEnumStudent) {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}
