package dashboard

import (
	"net/http"

	"equipecho/internal/access"
	"equipecho/internal/middleware"
	"equipecho/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/dashboard", middleware.RequireRoute(access.RouteDashboard), h.Summary)
}

// Summary returns the home page numbers.
// @Summary		Dashboard summary
// @Tags		Dashboard
// @Security	BearerAuth
// @Success		200	{object}	Summary
// @Router		/dashboard [GET]
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}
