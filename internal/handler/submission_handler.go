package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RoaringMaas/edutrack-lms/internal/service"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
	"github.com/RoaringMaas/edutrack-lms/pkg/response"
)

// SubmissionHandler exposes homework submission tracking endpoints.
type SubmissionHandler struct {
	service *service.SubmissionService
}

// NewSubmissionHandler constructs a submission handler.
func NewSubmissionHandler(svc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: svc}
}

// ListByClass godoc
// @Summary List all submission rows for a class
// @Tags Submissions
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /classes/{id}/submissions [get]
func (h *SubmissionHandler) ListByClass(c *gin.Context) {
	submissions, err := h.service.ListByClass(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, submissions)
}

// Upsert godoc
// @Summary Set one student's status on one assignment
// @Tags Submissions
// @Accept json
// @Produce json
// @Param payload body service.UpsertSubmissionRequest true "Submission payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /submissions [put]
func (h *SubmissionHandler) Upsert(c *gin.Context) {
	var req service.UpsertSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	submission, err := h.service.Upsert(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, submission)
}
