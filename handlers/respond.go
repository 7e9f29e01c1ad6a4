// File: handlers/respond.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cursos/models"
	"cursos/services/admin"
	"cursos/services/auth"
	"cursos/services/backend"
	"cursos/services/catalog"
	"cursos/services/content"
	"cursos/services/flash"
	"cursos/services/validation"
	"cursos/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const unreachableMessage = "Cannot reach the server."

// View is the JSON envelope every page and action returns to the browser.
type View struct {
	Data            any                  `json:"data,omitempty"`
	Toast           *models.Toast        `json:"toast,omitempty"`
	Toasts          []models.Toast       `json:"toasts,omitempty"`
	Redirect        string               `json:"redirect,omitempty"`
	RedirectAfterMs int64                `json:"redirectAfterMs,omitempty"`
	Errors          map[string]string    `json:"errors,omitempty"`
	Confirm         *models.Confirmation `json:"confirm,omitempty"`
}

// Responder writes views and carries toasts across redirects.
type Responder struct {
	Flash *flash.Store
}

func toast(severity models.Severity, summary, detail string) *models.Toast {
	return &models.Toast{Severity: severity, Summary: summary, Detail: detail, Life: utils.ToastLife}
}

// render attaches queued flash toasts and writes the view.
func (r *Responder) render(c *gin.Context, status int, v View) {
	if r.Flash != nil {
		v.Toasts = append(v.Toasts, r.Flash.Pop(c.Writer, c.Request)...)
	}
	c.JSON(status, v)
}

// redirect sends the browser to target, showing t on arrival.
func (r *Responder) redirect(c *gin.Context, target string, t *models.Toast) {
	if t != nil && r.Flash != nil {
		if err := r.Flash.Add(c.Writer, c.Request, *t); err != nil {
			getLogger(c).Warn("Failed to queue toast", zap.Error(err))
		}
	}
	c.Redirect(http.StatusSeeOther, target)
	c.Abort()
}

// fail translates a service error into a status and an error toast. fallback is shown
// when the backend gave no message of its own.
func (r *Responder) fail(c *gin.Context, err error, fallback string) {
	logger := getLogger(c)

	var fields validation.FieldErrors
	var loginRequired catalog.LoginRequiredError
	switch {
	case errors.As(err, &fields):
		r.render(c, http.StatusBadRequest, View{Errors: fields})
		return
	case errors.As(err, &loginRequired):
		r.redirect(c, loginRequired.Redirect(), nil)
		return
	case errors.Is(err, admin.ErrSelfToggle):
		r.render(c, http.StatusForbidden, View{Toast: toast(models.SeverityWarn, "Not allowed", "You cannot disable your own user.")})
		return
	case errors.Is(err, content.ErrModuleNotFound), errors.Is(err, content.ErrLessonNotFound):
		r.render(c, http.StatusNotFound, View{Toast: toast(models.SeverityError, "Error", err.Error())})
		return
	case errors.Is(err, content.ErrIndexOutOfRange):
		r.render(c, http.StatusBadRequest, View{Toast: toast(models.SeverityError, "Error", err.Error())})
		return
	case errors.Is(err, auth.ErrInvalidResetLink):
		r.render(c, http.StatusBadRequest, View{Toast: toast(models.SeverityError, "Invalid link", "The reset link is invalid or has expired.")})
		return
	case errors.Is(err, backend.ErrUnreachable):
		logger.Warn("Backend unreachable", zap.Error(err))
		r.render(c, http.StatusBadGateway, View{Toast: toast(models.SeverityError, "Connection error", unreachableMessage)})
		return
	}

	status := backend.StatusOf(err)
	switch {
	case status == 0:
		logger.Error(fallback, zap.Error(err))
		status = http.StatusInternalServerError
	case status >= http.StatusInternalServerError:
		logger.Error(fallback, zap.Error(err))
		status = http.StatusBadGateway
	default:
		logger.Info(fallback, zap.Error(err))
	}
	r.render(c, status, View{Toast: toast(models.SeverityError, "Error", backend.MessageOf(err, fallback))})
}

// requireConfirm reports whether the request carries confirm=true. Otherwise it answers
// 428 with the prompt and the caller must stop.
func (r *Responder) requireConfirm(c *gin.Context, header, message string) bool {
	if confirmed, _ := strconv.ParseBool(c.Query("confirm")); confirmed {
		return true
	}
	r.render(c, http.StatusPreconditionRequired, View{Confirm: &models.Confirmation{Header: header, Message: message}})
	return false
}

// idParam parses a positive numeric path parameter, answering 400 when it is not one.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid "+name, c.Param(name))
		return 0, false
	}
	return id, true
}

// bind decodes the request body into form, answering 400 on malformed input.
func bind(c *gin.Context, form any) bool {
	if err := c.ShouldBind(form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}
