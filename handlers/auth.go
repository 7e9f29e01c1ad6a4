// File: handlers/auth.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cursos/models"
	"cursos/services/auth"
	"cursos/services/session"
	"cursos/services/validation"
	"cursos/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves sign in, sign out, registration and password reset.
type AuthHandler struct {
	Responder
	Auth     auth.AuthService
	Sessions *session.Provider
}

func NewAuthHandler(r Responder, svc auth.AuthService, sessions *session.Provider) *AuthHandler {
	return &AuthHandler{Responder: r, Auth: svc, Sessions: sessions}
}

// LoginPageHandler returns the pending navigation so the form can carry it back.
func (h *AuthHandler) LoginPageHandler(c *gin.Context) {
	h.render(c, http.StatusOK, View{Data: gin.H{
		"redirect":       c.Query("redirect"),
		"enrollCourseId": c.Query("enrollCourseId"),
	}})
}

// LoginHandler authenticates, persists the session and answers where to go next.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)
	var form auth.LoginForm
	if !bind(c, &form) {
		return
	}
	target := auth.LoginTarget{Redirect: c.Query("redirect")}
	if raw := c.Query("enrollCourseId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			target.EnrollCourseID = id
		}
	}

	res, err := h.Auth.Login(c.Request.Context(), form, target)
	if err != nil {
		var fields validation.FieldErrors
		if errors.As(err, &fields) {
			h.render(c, http.StatusBadRequest, View{Errors: fields})
			return
		}
		status, t := auth.LoginFailure(err)
		logger.Info("Login failed", zap.Int("status", status), zap.Error(err))
		h.render(c, status, View{Toast: &t})
		return
	}
	if err := h.Sessions.Set(c, *res.Session); err != nil {
		logger.Error("Failed to persist session", zap.Error(err))
		h.render(c, http.StatusInternalServerError, View{Toast: toast(models.SeverityError, "Error", "Could not start the session.")})
		return
	}
	logger.Info("User signed in", zap.Int64("userID", res.Session.User.ID), zap.Stringer("role", res.Role))

	welcome := toast(models.SeveritySuccess, "Welcome", "Signed in as "+res.Session.User.Name+".")
	if target.EnrollCourseID > 0 && !res.Enrolled {
		welcome = toast(models.SeverityInfo, "Notice", "You may already be enrolled in this course.")
	}
	h.render(c, http.StatusOK, View{Toast: welcome, Redirect: res.Next})
}

// LogoutHandler clears the session; subscribers drop the user's drafts.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	h.Sessions.Clear(c, "logout")
	h.redirect(c, "/login", toast(models.SeverityInfo, "Signed out", "You have signed out."))
}

// RegisterPageHandler serves the self-registration form. Only students sign up here.
func (h *AuthHandler) RegisterPageHandler(c *gin.Context) {
	h.render(c, http.StatusOK, View{Data: gin.H{"role": models.RoleEnumStudent}})
}

// RegisterHandler is student self-registration.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var form auth.RegisterForm
	if !bind(c, &form) {
		return
	}
	out, err := h.Auth.Register(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err, "Registration failed.")
		return
	}
	h.outcome(c, out)
}

// RegisterTeacherHandler lets an admin create a teacher account.
func (h *AuthHandler) RegisterTeacherHandler(c *gin.Context) {
	var form auth.TeacherForm
	if !bind(c, &form) {
		return
	}
	sess := h.Sessions.Get(c)
	out, err := h.Auth.RegisterTeacher(c.Request.Context(), sess.Token, form)
	if err != nil {
		h.fail(c, err, "Could not register the teacher.")
		return
	}
	h.outcome(c, out)
}

func (h *AuthHandler) RequestResetHandler(c *gin.Context) {
	var form auth.ResetRequestForm
	if !bind(c, &form) {
		return
	}
	out, err := h.Auth.RequestPasswordReset(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err, "Could not send the reset link.")
		return
	}
	h.outcome(c, out)
}

// ResetPageHandler checks that the emailed link carries a token.
func (h *AuthHandler) ResetPageHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.render(c, http.StatusBadRequest, View{Toast: toast(models.SeverityError, "Invalid link", "The reset link is missing its token.")})
		return
	}
	h.render(c, http.StatusOK, View{Data: gin.H{"token": token}})
}

func (h *AuthHandler) ResetPasswordHandler(c *gin.Context) {
	var form auth.ResetForm
	if !bind(c, &form) {
		return
	}
	if form.Token == "" {
		form.Token = c.Query("token")
	}
	out, err := h.Auth.ResetPassword(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err, "Could not reset the password.")
		return
	}
	h.outcome(c, out)
}

func (h *AuthHandler) outcome(c *gin.Context, out *auth.Outcome) {
	t := out.Toast
	if t.Life == 0 {
		t.Life = utils.ToastLife
	}
	h.render(c, http.StatusOK, View{Toast: &t, Redirect: out.Redirect, RedirectAfterMs: out.Delay.Milliseconds()})
}
