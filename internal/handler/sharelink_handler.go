package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RoaringMaas/edutrack-lms/internal/service"
	"github.com/RoaringMaas/edutrack-lms/pkg/response"
)

// ShareLinkHandler exposes parent share-link endpoints. Link management is
// authenticated; resolution is the one public read in the API.
type ShareLinkHandler struct {
	links *service.ShareLinkService
	views *service.ParentViewService
}

// NewShareLinkHandler constructs a share-link handler.
func NewShareLinkHandler(links *service.ShareLinkService, views *service.ParentViewService) *ShareLinkHandler {
	return &ShareLinkHandler{links: links, views: views}
}

// Generate godoc
// @Summary Generate a parent share link for a student
// @Tags ShareLinks
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id}/share-link [post]
func (h *ShareLinkHandler) Generate(c *gin.Context) {
	token, err := h.links.Generate(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"token": token})
}

// Revoke godoc
// @Summary Revoke a student's parent share link
// @Tags ShareLinks
// @Param id path string true "Student ID"
// @Success 204
// @Security BearerAuth
// @Router /students/{id}/share-link [delete]
func (h *ShareLinkHandler) Revoke(c *gin.Context) {
	if err := h.links.Revoke(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ParentView godoc
// @Summary Resolve a share token to a read-only progress snapshot
// @Tags ShareLinks
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} response.Envelope
// @Router /parent-view/{token} [get]
func (h *ShareLinkHandler) ParentView(c *gin.Context) {
	projection, err := h.views.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, projection)
}
