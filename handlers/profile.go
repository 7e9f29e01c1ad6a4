// File: handlers/profile.go
package handlers

import (
	"net/http"

	"cursos/models"
	"cursos/services/profile"
	"cursos/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler lets any signed-in user edit their own profile and password.
type ProfileHandler struct {
	Responder
	Profile  profile.ProfileService
	Sessions *session.Provider
}

func NewProfileHandler(r Responder, svc profile.ProfileService, sessions *session.Provider) *ProfileHandler {
	return &ProfileHandler{Responder: r, Profile: svc, Sessions: sessions}
}

// GetProfileHandler returns the profile form pre-filled from the session.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	h.render(c, http.StatusOK, View{Data: profile.FormFor(h.Sessions.Get(c))})
}

// UpdateProfileHandler saves the profile and rewrites the session with it.
func (h *ProfileHandler) UpdateProfileHandler(c *gin.Context) {
	var form profile.Form
	if !bind(c, &form) {
		return
	}
	updated, err := h.Profile.Update(c.Request.Context(), h.Sessions.Get(c), form)
	if err != nil {
		h.fail(c, err, "Could not update the profile.")
		return
	}
	if err := h.Sessions.Set(c, *updated); err != nil {
		getLogger(c).Error("Failed to rewrite session after profile update", zap.Error(err))
	}
	h.render(c, http.StatusOK, View{
		Data:  profile.FormFor(updated),
		Toast: toast(models.SeveritySuccess, "Success", "Profile updated."),
	})
}

func (h *ProfileHandler) ChangePasswordHandler(c *gin.Context) {
	var form profile.PasswordForm
	if !bind(c, &form) {
		return
	}
	if err := h.Profile.ChangePassword(c.Request.Context(), h.Sessions.Get(c), form); err != nil {
		h.fail(c, err, "Could not change the password.")
		return
	}
	h.render(c, http.StatusOK, View{Toast: toast(models.SeveritySuccess, "Success", "Password changed.")})
}
