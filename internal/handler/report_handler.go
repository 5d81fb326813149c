package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RoaringMaas/edutrack-lms/internal/service"
	"github.com/RoaringMaas/edutrack-lms/pkg/response"
)

// ReportHandler exposes narrative report endpoints.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// StudentReport godoc
// @Summary Generate a progress report for one student
// @Tags Reports
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id}/report [get]
func (h *ReportHandler) StudentReport(c *gin.Context) {
	report, err := h.service.StudentReport(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// ClassReport godoc
// @Summary Generate a class progress summary
// @Tags Reports
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /classes/{id}/report [get]
func (h *ReportHandler) ClassReport(c *gin.Context) {
	report, err := h.service.ClassReport(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// StudentReportPDF godoc
// @Summary Download a student's progress report as PDF
// @Tags Reports
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /students/{id}/report/pdf [get]
func (h *ReportHandler) StudentReportPDF(c *gin.Context) {
	data, filename, err := h.service.StudentReportPDF(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
