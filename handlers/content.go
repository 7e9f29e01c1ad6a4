// File: handlers/content.go
package handlers

import (
	"net/http"
	"strconv"

	"cursos/models"
	"cursos/services/content"
	"cursos/services/session"

	"github.com/gin-gonic/gin"
)

// ContentHandler exposes the course content editor. Every mutation answers with the
// updated draft.
type ContentHandler struct {
	Responder
	Editor   content.EditorService
	Sessions *session.Provider
}

func NewContentHandler(r Responder, svc content.EditorService, sessions *session.Provider) *ContentHandler {
	return &ContentHandler{Responder: r, Editor: svc, Sessions: sessions}
}

func (h *ContentHandler) draft(c *gin.Context, d *content.Draft, err error, fallback string, t *models.Toast) {
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	h.render(c, http.StatusOK, View{Data: d, Toast: t})
}

// GetDraftHandler loads the course content into a draft, or returns the pending one.
func (h *ContentHandler) GetDraftHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	d, err := h.Editor.Load(c.Request.Context(), h.Sessions.Get(c), id)
	h.draft(c, d, err, "Could not load the course content.", nil)
}

// SaveHandler overwrites the backend document with the draft.
func (h *ContentHandler) SaveHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	d, err := h.Editor.Save(c.Request.Context(), h.Sessions.Get(c), id)
	h.draft(c, d, err, "Could not save the content.", toast(models.SeveritySuccess, "Saved", "Content saved."))
}

func (h *ContentHandler) DiscardHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	sess := h.Sessions.Get(c)
	if err := h.Editor.Discard(c.Request.Context(), sess, id); err != nil {
		h.fail(c, err, "Could not discard the changes.")
		return
	}
	d, err := h.Editor.Load(c.Request.Context(), sess, id)
	h.draft(c, d, err, "Could not load the course content.", toast(models.SeverityInfo, "Discarded", "Local changes were discarded."))
}

func (h *ContentHandler) AddModuleHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in content.ModuleInput
	if !bind(c, &in) {
		return
	}
	d, err := h.Editor.AddModule(c.Request.Context(), h.Sessions.Get(c), id, in)
	h.draft(c, d, err, "Could not add the module.", nil)
}

func (h *ContentHandler) RenameModuleHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in content.ModuleInput
	if !bind(c, &in) {
		return
	}
	d, err := h.Editor.RenameModule(c.Request.Context(), h.Sessions.Get(c), id, c.Param("moduleID"), in)
	h.draft(c, d, err, "Could not rename the module.", nil)
}

// DeleteModuleHandler removes a module and all its lessons after confirmation.
func (h *ContentHandler) DeleteModuleHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if !h.requireConfirm(c, "Delete module", "The module and all its lessons will be removed. Continue?") {
		return
	}
	d, err := h.Editor.DeleteModule(c.Request.Context(), h.Sessions.Get(c), id, c.Param("moduleID"))
	h.draft(c, d, err, "Could not delete the module.", nil)
}

func (h *ContentHandler) MoveModuleHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Query("index"))
	if err != nil {
		h.render(c, http.StatusBadRequest, View{Errors: map[string]string{"index": "Index must be a number."}})
		return
	}
	d, err := h.Editor.MoveModule(c.Request.Context(), h.Sessions.Get(c), id, c.Param("moduleID"), index)
	h.draft(c, d, err, "Could not move the module.", nil)
}

func (h *ContentHandler) AddLessonHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in content.LessonInput
	if !bind(c, &in) {
		return
	}
	d, err := h.Editor.AddLesson(c.Request.Context(), h.Sessions.Get(c), id, c.Param("moduleID"), in)
	h.draft(c, d, err, "Could not add the lesson.", nil)
}

func (h *ContentHandler) EditLessonHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in content.LessonInput
	if !bind(c, &in) {
		return
	}
	d, err := h.Editor.EditLesson(c.Request.Context(), h.Sessions.Get(c), id, c.Param("moduleID"), c.Param("lessonID"), in)
	h.draft(c, d, err, "Could not update the lesson.", nil)
}

func (h *ContentHandler) DeleteLessonHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if !h.requireConfirm(c, "Delete lesson", "Do you want to delete this lesson?") {
		return
	}
	d, err := h.Editor.DeleteLesson(c.Request.Context(), h.Sessions.Get(c), id, c.Param("moduleID"), c.Param("lessonID"))
	h.draft(c, d, err, "Could not delete the lesson.", nil)
}
