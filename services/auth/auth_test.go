package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"cursos/models"
	"cursos/services/backend"
	"cursos/services/validation"
	"cursos/utils"
)

type fakeBackend struct {
	login   func(backend.Credentials) (*models.Session, error)
	enroll  func(token string, courseID int64) error
	calls   []string
	teacher *models.Registration
}

func (f *fakeBackend) Login(_ context.Context, creds backend.Credentials) (*models.Session, error) {
	f.calls = append(f.calls, "login")
	return f.login(creds)
}

func (f *fakeBackend) Register(context.Context, models.Registration) error {
	f.calls = append(f.calls, "register")
	return nil
}

func (f *fakeBackend) RegisterTeacher(_ context.Context, _ string, reg models.Registration) error {
	f.calls = append(f.calls, "registerTeacher")
	f.teacher = &reg
	return nil
}

func (f *fakeBackend) RequestPasswordReset(context.Context, string) error { return nil }

func (f *fakeBackend) ResetPassword(context.Context, backend.PasswordReset) error {
	return &backend.APIError{Status: http.StatusBadRequest, Message: "token expired"}
}

func (f *fakeBackend) Enroll(_ context.Context, token string, courseID int64) error {
	f.calls = append(f.calls, "enroll")
	if f.enroll != nil {
		return f.enroll(token, courseID)
	}
	return nil
}

func studentLogin(creds backend.Credentials) (*models.Session, error) {
	if creds.Email != "a@b.com" || creds.Password != "Secret1!" {
		return nil, &backend.APIError{Status: http.StatusUnauthorized, Message: "Bad credentials"}
	}
	return &models.Session{
		Token: "tok",
		User:  models.SessionUser{ID: 1, Email: creds.Email, Rol: models.RoleRef{RoleEnum: "STUDENT"}},
	}, nil
}

func TestLoginRedirectPriority(t *testing.T) {
	form := LoginForm{Email: "a@b.com", Password: "Secret1!"}
	cases := []struct {
		name       string
		target     LoginTarget
		enrollErr  error
		wantNext   string
		wantEnroll bool
	}{
		{"enroll wins over redirect", LoginTarget{Redirect: "/profile", EnrollCourseID: 9}, nil, "/student/course/9/view", true},
		{"already enrolled still goes to viewer", LoginTarget{EnrollCourseID: 9}, &backend.APIError{Status: http.StatusConflict}, "/student/course/9/view", true},
		{"redirect over role", LoginTarget{Redirect: "/profile"}, nil, "/profile", false},
		{"off-site redirect ignored", LoginTarget{Redirect: "//evil.example"}, nil, "/student/my-courses", false},
		{"role landing", LoginTarget{}, nil, "/student/my-courses", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb := &fakeBackend{login: studentLogin, enroll: func(string, int64) error { return tc.enrollErr }}
			svc := &DefaultAuthService{API: fb}
			res, err := svc.Login(context.Background(), form, tc.target)
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			if res.Session.Token != "tok" || res.Role != models.RoleStudent {
				t.Fatalf("unexpected session %+v role %v", res.Session, res.Role)
			}
			if res.Next != tc.wantNext {
				t.Errorf("next = %q, want %q", res.Next, tc.wantNext)
			}
			enrolled := len(fb.calls) == 2 && fb.calls[1] == "enroll"
			if enrolled != tc.wantEnroll {
				t.Errorf("enroll attempted = %v, want %v (calls %v)", enrolled, tc.wantEnroll, fb.calls)
			}
		})
	}
}

func TestLoginValidatesBeforeCalling(t *testing.T) {
	fb := &fakeBackend{login: studentLogin}
	svc := &DefaultAuthService{API: fb}
	_, err := svc.Login(context.Background(), LoginForm{Email: "not-an-email"}, LoginTarget{})
	var fe validation.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FieldErrors", err)
	}
	if fe["email"] == "" || fe["password"] == "" {
		t.Errorf("expected email and password errors, got %v", fe)
	}
	if len(fb.calls) != 0 {
		t.Errorf("backend called: %v", fb.calls)
	}
}

func TestLoginUnknownRole(t *testing.T) {
	fb := &fakeBackend{login: func(backend.Credentials) (*models.Session, error) {
		return &models.Session{Token: "tok", User: models.SessionUser{Rol: models.RoleRef{RoleEnum: "JANITOR"}}}, nil
	}}
	svc := &DefaultAuthService{API: fb}
	_, err := svc.Login(context.Background(), LoginForm{Email: "a@b.com", Password: "x"}, LoginTarget{})
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("err = %v, want ErrUnknownRole", err)
	}
}

func TestLoginFailureMapping(t *testing.T) {
	status, toast := LoginFailure(&backend.APIError{Status: http.StatusForbidden})
	if status != http.StatusForbidden || toast.Life != utils.ToastLifeLong || toast.Summary != "Account locked" {
		t.Errorf("403 mapped to %d %+v", status, toast)
	}
	status, toast = LoginFailure(backend.ErrUnreachable)
	if status != http.StatusBadGateway || toast.Detail != "Cannot reach the server." {
		t.Errorf("network failure mapped to %d %+v", status, toast)
	}
	status, toast = LoginFailure(&backend.APIError{Status: http.StatusUnauthorized, Message: "Bad credentials"})
	if status != http.StatusUnauthorized || toast.Detail != "Bad credentials" || toast.Life != utils.ToastLife {
		t.Errorf("401 mapped to %d %+v", status, toast)
	}
}

func TestRegisterTeacherRejectsShortPhone(t *testing.T) {
	fb := &fakeBackend{}
	svc := &DefaultAuthService{API: fb}
	_, err := svc.RegisterTeacher(context.Background(), "tok", TeacherForm{
		Name: "Ana", LastName: "Lopez", Surname: "Diaz",
		Phone: "12345", Email: "ana@b.com", Password: "Secret1!",
	})
	var fe validation.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FieldErrors", err)
	}
	if fe["phone"] != "Phone must be 10 digits." {
		t.Errorf("phone error = %q", fe["phone"])
	}
	if len(fb.calls) != 0 {
		t.Errorf("backend called: %v", fb.calls)
	}
}

func TestRegisterFixesStudentRole(t *testing.T) {
	fb := &fakeBackend{}
	svc := &DefaultAuthService{API: fb, RedirectDelay: 3e9}
	out, err := svc.Register(context.Background(), RegisterForm{Name: "Ana", LastName: "Lopez", Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if out.Redirect != "/login" || out.Delay != 3e9 {
		t.Errorf("outcome = %+v", out)
	}
}

func TestResetPasswordInvalidLink(t *testing.T) {
	svc := &DefaultAuthService{API: &fakeBackend{}}
	_, err := svc.ResetPassword(context.Background(), ResetForm{Token: "t", NewPassword: "Secret1!", ConfirmPassword: "Secret1!"})
	if !errors.Is(err, ErrInvalidResetLink) {
		t.Fatalf("err = %v, want ErrInvalidResetLink", err)
	}
	_, err = svc.ResetPassword(context.Background(), ResetForm{Token: "t", NewPassword: "Secret1!", ConfirmPassword: "Other1!x"})
	var fe validation.FieldErrors
	if !errors.As(err, &fe) || fe["confirmPassword"] != "Passwords do not match." {
		t.Fatalf("mismatch err = %v", err)
	}
}
