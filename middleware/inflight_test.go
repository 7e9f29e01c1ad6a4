package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"cursos/models"
	"cursos/services/inflight"
	"cursos/services/session"

	"github.com/gin-gonic/gin"
)

func newInFlightEngine(t *testing.T) (*gin.Engine, *session.Codec, chan struct{}, chan struct{}) {
	t.Helper()
	codec, err := session.NewCodec("inflight-secret", "user", 3600)
	if err != nil {
		t.Fatal(err)
	}
	provider := session.NewProvider(codec, session.Options{CookieName: "user", MaxAge: 3600})
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	r := gin.New()
	r.Use(InFlight(inflight.NewGuard(), provider))
	r.POST("/courses/:id/enroll", func(c *gin.Context) {
		entered <- struct{}{}
		<-release
		c.Status(http.StatusOK)
	})
	return r, codec, entered, release
}

func waitEntered(t *testing.T, entered chan struct{}) {
	t.Helper()
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("handler not reached")
	}
}

func TestInFlightAnonymousWritesPass(t *testing.T) {
	r, _, entered, release := newInFlightEngine(t)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/courses/1/enroll", nil)
			req.Header.Set("X-Forwarded-For", "203.0.113.9")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	waitEntered(t, entered)
	waitEntered(t, entered)
	close(release)
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i, code)
		}
	}
}

func TestInFlightRejectsDuplicateSessionWrite(t *testing.T) {
	r, codec, entered, release := newInFlightEngine(t)
	value, err := codec.Encode(models.Session{Token: "student-token",
		User: models.SessionUser{ID: 3, Rol: models.RoleRef{RoleEnum: models.RoleEnumStudent}}})
	if err != nil {
		t.Fatal(err)
	}
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/courses/1/enroll", nil)
		req.AddCookie(&http.Cookie{Name: "user", Value: value})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	done := make(chan int, 1)
	go func() { done <- send().Code }()
	waitEntered(t, entered)

	if w := send(); w.Code != http.StatusConflict {
		t.Fatalf("duplicate = %d, want 409", w.Code)
	}
	close(release)
	if code := <-done; code != http.StatusOK {
		t.Fatalf("first = %d, want 200", code)
	}
}
