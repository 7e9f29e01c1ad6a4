// File: handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"

	"cursos/models"
	"cursos/services/admin"
	"cursos/services/listing"
	"cursos/services/session"

	"github.com/gin-gonic/gin"
)

// Default table sizes of the admin screens.
const (
	adminRows = 10
	logRows   = 15
)

// AdminHandler encapsulates the admin screens: users, categories and the audit log.
type AdminHandler struct {
	Responder
	Admin    admin.AdminService
	Sessions *session.Provider
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(r Responder, svc admin.AdminService, sessions *session.Provider) *AdminHandler {
	return &AdminHandler{Responder: r, Admin: svc, Sessions: sessions}
}

func (h *AdminHandler) usersView(c *gin.Context, t *models.Toast) {
	page, err := h.Admin.Users(c.Request.Context(), h.Sessions.Get(c), listing.ParseQuery(c.Request.URL.Query(), adminRows))
	if err != nil {
		h.fail(c, err, "Could not load users.")
		return
	}
	h.render(c, http.StatusOK, View{Data: page, Toast: t})
}

// GetUsersHandler returns the users table.
func (h *AdminHandler) GetUsersHandler(c *gin.Context) {
	h.usersView(c, nil)
}

func (h *AdminHandler) UpdateUserHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var form admin.UserForm
	if !bind(c, &form) {
		return
	}
	if err := h.Admin.UpdateUser(c.Request.Context(), h.Sessions.Get(c), id, form); err != nil {
		h.fail(c, err, "Could not update the user.")
		return
	}
	h.usersView(c, toast(models.SeveritySuccess, "Success", "User updated."))
}

// ToggleUserHandler activates or deactivates a user. The admin's own account is refused
// before asking for confirmation.
func (h *AdminHandler) ToggleUserHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	sess := h.Sessions.Get(c)
	if id == sess.User.ID {
		h.fail(c, admin.ErrSelfToggle, "")
		return
	}
	verb := "deactivate"
	if active, err := strconv.ParseBool(c.Query("active")); err == nil && !active {
		verb = "activate"
	}
	if !h.requireConfirm(c, "Confirm", "Do you want to "+verb+" this user?") {
		return
	}
	if err := h.Admin.ToggleUser(c.Request.Context(), sess, id); err != nil {
		h.fail(c, err, "Could not change the user status.")
		return
	}
	h.usersView(c, toast(models.SeveritySuccess, "Success", "User status updated."))
}

func (h *AdminHandler) categoriesView(c *gin.Context, t *models.Toast) {
	page, err := h.Admin.Categories(c.Request.Context(), h.Sessions.Get(c), listing.ParseQuery(c.Request.URL.Query(), adminRows))
	if err != nil {
		h.fail(c, err, "Could not load categories.")
		return
	}
	h.render(c, http.StatusOK, View{Data: page, Toast: t})
}

func (h *AdminHandler) GetCategoriesHandler(c *gin.Context) {
	h.categoriesView(c, nil)
}

// SaveCategoryHandler creates (POST) or updates (PUT /:id) a category.
func (h *AdminHandler) SaveCategoryHandler(c *gin.Context) {
	var id int64
	if c.Param("id") != "" {
		var ok bool
		if id, ok = idParam(c, "id"); !ok {
			return
		}
	}
	var form admin.CategoryForm
	if !bind(c, &form) {
		return
	}
	if err := h.Admin.SaveCategory(c.Request.Context(), h.Sessions.Get(c), id, form); err != nil {
		h.fail(c, err, "Could not save the category.")
		return
	}
	detail := "Category created."
	if id != 0 {
		detail = "Category updated."
	}
	h.categoriesView(c, toast(models.SeveritySuccess, "Success", detail))
}

func (h *AdminHandler) ToggleCategoryHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if !h.requireConfirm(c, "Confirm", "Do you want to change the status of this category?") {
		return
	}
	if err := h.Admin.ToggleCategory(c.Request.Context(), h.Sessions.Get(c), id); err != nil {
		h.fail(c, err, "Could not change the category status.")
		return
	}
	h.categoriesView(c, toast(models.SeveritySuccess, "Success", "Category status updated."))
}

// GetLogsHandler returns the audit log, newest first.
func (h *AdminHandler) GetLogsHandler(c *gin.Context) {
	page, err := h.Admin.AuditLogs(c.Request.Context(), h.Sessions.Get(c), listing.ParseQuery(c.Request.URL.Query(), logRows))
	if err != nil {
		h.fail(c, err, "Could not load the audit log.")
		return
	}
	h.render(c, http.StatusOK, View{Data: page})
}
