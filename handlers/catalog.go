// File: handlers/catalog.go
package handlers

import (
	"net/http"

	"cursos/config"
	"cursos/models"
	"cursos/services/catalog"
	"cursos/services/listing"
	"cursos/services/session"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public catalog and the student's course pages.
type CatalogHandler struct {
	Responder
	Catalog  catalog.CatalogService
	Sessions *session.Provider
}

func NewCatalogHandler(r Responder, svc catalog.CatalogService, sessions *session.Provider) *CatalogHandler {
	return &CatalogHandler{Responder: r, Catalog: svc, Sessions: sessions}
}

func pageSize() int {
	if config.AppConfig.CatalogPageSize > 0 {
		return config.AppConfig.CatalogPageSize
	}
	return 6
}

// CatalogHandler lists enabled courses.
func (h *CatalogHandler) CatalogHandler(c *gin.Context) {
	view, err := h.Catalog.Catalog(c.Request.Context(), h.Sessions.Get(c), listing.ParseQuery(c.Request.URL.Query(), pageSize()))
	if err != nil {
		h.fail(c, err, "Could not load the courses.")
		return
	}
	h.render(c, http.StatusOK, View{Data: view})
}

func (h *CatalogHandler) PreviewHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	view, err := h.Catalog.Preview(c.Request.Context(), h.Sessions.Get(c), id)
	if err != nil {
		h.fail(c, err, "Could not load the course.")
		return
	}
	h.render(c, http.StatusOK, View{Data: view})
}

// EnrollHandler enrolls a student. Anyone else is sent to login and returns to the viewer.
func (h *CatalogHandler) EnrollHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := h.Catalog.Enroll(c.Request.Context(), h.Sessions.Get(c), id)
	if err != nil {
		h.fail(c, err, "Could not enroll in the course.")
		return
	}
	t := out.Toast
	h.render(c, http.StatusOK, View{Data: out, Toast: &t, Redirect: out.Next})
}

func (h *CatalogHandler) UnenrollHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if !h.requireConfirm(c, "Confirm", "Do you want to leave this course?") {
		return
	}
	sess := h.Sessions.Get(c)
	if err := h.Catalog.Unenroll(c.Request.Context(), sess, id); err != nil {
		h.fail(c, err, "Could not leave the course.")
		return
	}
	page, err := h.Catalog.MyCourses(c.Request.Context(), sess, listing.ParseQuery(c.Request.URL.Query(), pageSize()))
	if err != nil {
		h.fail(c, err, "Could not load your courses.")
		return
	}
	h.render(c, http.StatusOK, View{Data: page, Toast: toast(models.SeveritySuccess, "Done", "You left the course.")})
}

func (h *CatalogHandler) MyCoursesHandler(c *gin.Context) {
	page, err := h.Catalog.MyCourses(c.Request.Context(), h.Sessions.Get(c), listing.ParseQuery(c.Request.URL.Query(), pageSize()))
	if err != nil {
		h.fail(c, err, "Could not load your courses.")
		return
	}
	h.render(c, http.StatusOK, View{Data: page})
}

// ViewerHandler shows the full content of an enrolled course.
func (h *CatalogHandler) ViewerHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	view, err := h.Catalog.Viewer(c.Request.Context(), h.Sessions.Get(c), id)
	if err != nil {
		h.fail(c, err, "Could not load the course content.")
		return
	}
	h.render(c, http.StatusOK, View{Data: view})
}
