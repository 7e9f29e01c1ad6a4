// File: services/flash/flash.go
package flash

import (
	"encoding/json"
	"net/http"

	"cursos/models"

	"github.com/gorilla/sessions"
)

const sessionName = "flash"

// Store carries toasts across a redirect in a short-lived signed cookie.
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore builds a flash store; keyPairs are passed to sessions.NewCookieStore.
func NewStore(secure bool, keyPairs ...[]byte) *Store {
	cs := sessions.NewCookieStore(keyPairs...)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs}
}

// Add queues t for the next request.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, t models.Toast) error {
	sess, _ := s.cookies.Get(r, sessionName)
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	sess.AddFlash(string(data))
	return sess.Save(r, w)
}

// Pop returns and removes the queued toasts.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []models.Toast {
	sess, err := s.cookies.Get(r, sessionName)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	toasts := make([]models.Toast, 0, len(raw))
	for _, f := range raw {
		str, ok := f.(string)
		if !ok {
			continue
		}
		var t models.Toast
		if err := json.Unmarshal([]byte(str), &t); err == nil {
			toasts = append(toasts, t)
		}
	}
	_ = sess.Save(r, w)
	return toasts
}
