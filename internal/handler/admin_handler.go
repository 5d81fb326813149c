package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RoaringMaas/edutrack-lms/internal/service"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
	"github.com/RoaringMaas/edutrack-lms/pkg/response"
)

// AdminHandler exposes account administration endpoints.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// ListUsers godoc
// @Summary List all accounts
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// UpdateUserRole godoc
// @Summary Change an account's roles
// @Tags Admin
// @Accept json
// @Param id path string true "User ID"
// @Param payload body service.UpdateUserRoleRequest true "Role payload"
// @Success 204
// @Security BearerAuth
// @Router /admin/users/{id}/role [put]
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var req service.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if err := h.service.UpdateUserRole(c.Request.Context(), claimsFromContext(c), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateAccountStatus godoc
// @Summary Approve or reject an account
// @Tags Admin
// @Accept json
// @Param id path string true "User ID"
// @Param payload body service.UpdateAccountStatusRequest true "Status payload"
// @Success 204
// @Security BearerAuth
// @Router /admin/users/{id}/status [put]
func (h *AdminHandler) UpdateAccountStatus(c *gin.Context) {
	var req service.UpdateAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if err := h.service.UpdateAccountStatus(c.Request.Context(), claimsFromContext(c), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
