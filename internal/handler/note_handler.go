package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RoaringMaas/edutrack-lms/internal/service"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
	"github.com/RoaringMaas/edutrack-lms/pkg/response"
)

// NoteHandler serves the per-class teacher notepad.
type NoteHandler struct {
	service *service.NoteService
}

func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{service: svc}
}

type upsertNotePayload struct {
	Notes string `json:"notes"`
}

// Get godoc
// @Summary Fetch the notes for a class
// @Tags Notes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /classes/{id}/notes [get]
func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.service.Get(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note)
}

// Upsert godoc
// @Summary Save the notes for a class
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body upsertNotePayload true "Notes payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /classes/{id}/notes [put]
func (h *NoteHandler) Upsert(c *gin.Context) {
	var req upsertNotePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	note, err := h.service.Upsert(c.Request.Context(), claimsFromContext(c), c.Param("id"), req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note)
}
