package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RoaringMaas/edutrack-lms/internal/service"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
	"github.com/RoaringMaas/edutrack-lms/pkg/response"
)

// AssessmentHandler exposes assessment endpoints.
type AssessmentHandler struct {
	service *service.AssessmentService
}

// NewAssessmentHandler constructs an assessment handler.
func NewAssessmentHandler(svc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: svc}
}

// List godoc
// @Summary List a class's assessments
// @Tags Assessments
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /classes/{id}/assessments [get]
func (h *AssessmentHandler) List(c *gin.Context) {
	assessments, err := h.service.List(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessments)
}

// Get godoc
// @Summary Get assessment detail
// @Tags Assessments
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) Get(c *gin.Context) {
	assessment, err := h.service.Get(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment)
}

// Create godoc
// @Summary Create an assessment
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.CreateAssessmentRequest true "Assessment payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /classes/{id}/assessments [post]
func (h *AssessmentHandler) Create(c *gin.Context) {
	var req service.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	assessment, err := h.service.Create(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assessment)
}

// Update godoc
// @Summary Update an assessment
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path string true "Assessment ID"
// @Param payload body service.UpdateAssessmentRequest true "Assessment payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /assessments/{id} [put]
func (h *AssessmentHandler) Update(c *gin.Context) {
	var req service.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	assessment, err := h.service.Update(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment)
}

// UploadFile godoc
// @Summary Attach a test-paper PDF to an assessment
// @Tags Assessments
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Assessment ID"
// @Param file formData file true "PDF file"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /assessments/{id}/file [post]
func (h *AssessmentHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing file upload"))
		return
	}
	data, err := readUpload(c, "file")
	if err != nil {
		response.Error(c, err)
		return
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	assessment, err := h.service.UploadFile(c.Request.Context(), claimsFromContext(c), c.Param("id"), fileHeader.Filename, mimeType, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment)
}

// RemoveFile godoc
// @Summary Detach the test-paper file
// @Tags Assessments
// @Param id path string true "Assessment ID"
// @Success 204
// @Security BearerAuth
// @Router /assessments/{id}/file [delete]
func (h *AssessmentHandler) RemoveFile(c *gin.Context) {
	if err := h.service.RemoveFile(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete an assessment
// @Tags Assessments
// @Param id path string true "Assessment ID"
// @Success 204
// @Security BearerAuth
// @Router /assessments/{id} [delete]
func (h *AssessmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
