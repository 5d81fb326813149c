package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RoaringMaas/edutrack-lms/internal/service"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
	"github.com/RoaringMaas/edutrack-lms/pkg/response"
)

// GradeHandler exposes scoring endpoints.
type GradeHandler struct {
	service *service.GradeService
	metrics *service.MetricsService
}

// NewGradeHandler constructs a grade handler. Metrics may be nil.
func NewGradeHandler(svc *service.GradeService, metrics *service.MetricsService) *GradeHandler {
	return &GradeHandler{service: svc, metrics: metrics}
}

// ListByClass godoc
// @Summary List all grades for a class
// @Tags Grades
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /classes/{id}/grades [get]
func (h *GradeHandler) ListByClass(c *gin.Context) {
	grades, err := h.service.ListByClass(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades)
}

// ListByStudent godoc
// @Summary List one student's grades
// @Tags Grades
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id}/grades [get]
func (h *GradeHandler) ListByStudent(c *gin.Context) {
	grades, err := h.service.ListByStudent(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades)
}

// Upsert godoc
// @Summary Score one student on one assessment
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.UpsertGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /grades [put]
func (h *GradeHandler) Upsert(c *gin.Context) {
	var req service.UpsertGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	grade, err := h.service.Upsert(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade)
}

// BulkUpsert godoc
// @Summary Score many students on one assessment
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.BulkUpsertGradeRequest true "Bulk grade payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /grades/bulk [put]
func (h *GradeHandler) BulkUpsert(c *gin.Context) {
	var req service.BulkUpsertGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	count, err := h.service.BulkUpsert(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": count})
}

// ImportScores godoc
// @Summary Import scores from parsed rows
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.ImportScoresRequest true "Score rows"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /grades/import [post]
func (h *GradeHandler) ImportScores(c *gin.Context) {
	var req service.ImportScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	result, err := h.service.ImportScores(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.countImport(result)
	response.JSON(c, http.StatusOK, result)
}

// ImportScoresCSV godoc
// @Summary Import scores from an uploaded CSV file
// @Tags Grades
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Assessment ID"
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /assessments/{id}/scores/import [post]
func (h *GradeHandler) ImportScoresCSV(c *gin.Context) {
	data, err := readUpload(c, "file")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.ImportScoresCSV(c.Request.Context(), claimsFromContext(c), c.Param("id"), data)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.countImport(result)
	response.JSON(c, http.StatusOK, result)
}

// ExportCSV godoc
// @Summary Download the class scoreboard as CSV
// @Tags Grades
// @Produce text/csv
// @Param id path string true "Class ID"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /classes/{id}/grades/export [get]
func (h *GradeHandler) ExportCSV(c *gin.Context) {
	data, filename, err := h.service.ExportCSV(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *GradeHandler) countImport(result *service.ImportScoresResult) {
	if h.metrics == nil {
		return
	}
	h.metrics.CountImportRows(result.Imported, len(result.Skipped), len(result.Unmatched))
}
