package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cursos/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(srv.URL, "/cursos/auth", srv.Client())
}

func TestEnvelopeAndBearerHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/courses/findAll" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		io.WriteString(w, `{"result":[{"id":1,"name":"Go","enabled":true},{"id":2,"name":"Rust","enabled":false}],"message":"ok"}`)
	})

	courses, err := c.FindAllCourses(context.Background(), "tok")
	if err != nil {
		t.Fatal(err)
	}
	if len(courses) != 2 || courses[0].Name != "Go" || courses[1].Enabled {
		t.Fatalf("courses = %+v", courses)
	}
}

func TestErrorMessageAndStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"result":null,"message":"Already enrolled"}`)
	})

	err := c.Enroll(context.Background(), "tok", 5)
	if !IsConflict(err) {
		t.Fatalf("err = %v, want 409", err)
	}
	if MessageOf(err, "fallback") != "Already enrolled" {
		t.Fatalf("message = %q", MessageOf(err, "fallback"))
	}
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, "/cursos/auth", time.Second)
	_, err := c.MyCourses(context.Background(), "tok")
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
	if StatusOf(err) != 0 {
		t.Fatalf("status = %d, want 0", StatusOf(err))
	}
}

func TestLoginIsNotEnveloped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cursos/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not carry a bearer token")
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email != "a@b.com" {
			t.Errorf("creds = %+v, err = %v", creds, err)
		}
		io.WriteString(w, `{"token":"jwt","user":{"id":3,"name":"Ana","rol":{"roleEnum":"STUDENT"}}}`)
	})

	sess, err := c.Login(context.Background(), Credentials{Email: "a@b.com", Password: "Secret1!"})
	if err != nil {
		t.Fatal(err)
	}
	if sess.Token != "jwt" || sess.RoleName() != "STUDENT" || sess.User.ID != 3 {
		t.Fatalf("session = %+v", sess)
	}
}

func TestEnrollBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int64
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body["courseId"] != 9 {
			t.Errorf("body = %v", body)
		}
		io.WriteString(w, `{"result":null}`)
	})
	if err := c.Enroll(context.Background(), "tok", 9); err != nil {
		t.Fatal(err)
	}
}

func TestSaveCourseMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/courses/update-course/4" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse: %v", err)
			return
		}
		want := map[string]string{"name": "Go", "description": "Intro", "duration": "12", "teacherId": "42", "categoryId": "3"}
		for k, v := range want {
			if got := r.FormValue(k); got != v {
				t.Errorf("%s = %q, want %q", k, got, v)
			}
		}
		if _, ok := r.MultipartForm.Value["syllabus"]; ok {
			t.Error("empty syllabus must be omitted")
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("file: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "cover.png" || string(data) != "png" {
			t.Errorf("file = %s %q", hdr.Filename, data)
		}
		io.WriteString(w, `{"result":null}`)
	})

	err := c.SaveCourse(context.Background(), "tok", 4, models.CourseForm{
		Name: "Go", Description: "Intro", Duration: 12, TeacherID: 42, CategoryID: 3,
		File: &models.Upload{Filename: "cover.png", ContentType: "image/png", Data: []byte("png")},
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestContentDocument(t *testing.T) {
	cases := map[string]string{
		"object":      `{"result":{"contentJson":{"modules":[{"id":"m","title":"M","lessons":[]}]}}}`,
		"string":      `{"result":{"contentJson":"{\"modules\":[{\"id\":\"m\",\"title\":\"M\"}]}"}}`,
		"fallback":    `{"result":{"content":{"modules":[{"id":"m","title":"M"}]}}}`,
		"unparseable": `{"result":{"contentJson":"not json"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			})
			doc, err := c.GetContent(context.Background(), "tok", 1)
			if err != nil {
				t.Fatal(err)
			}
			if doc.Modules == nil {
				t.Fatal("modules must never be nil")
			}
			if name == "unparseable" {
				if len(doc.Modules) != 0 {
					t.Fatalf("modules = %+v", doc.Modules)
				}
				return
			}
			if len(doc.Modules) != 1 || doc.Modules[0].Lessons == nil {
				t.Fatalf("modules = %+v", doc.Modules)
			}
		})
	}
}

func TestSaveEmptyContent(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		got = string(data)
		io.WriteString(w, `{"result":null}`)
	})
	if err := c.SaveContent(context.Background(), "tok", 1, models.ContentDocument{}); err != nil {
		t.Fatal(err)
	}
	if got != `{"modules":[]}` {
		t.Fatalf("body = %s", got)
	}
}
