package navigation

import (
	"net/http"

	"equipecho/internal/access"
	"equipecho/internal/middleware"
	"equipecho/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes the role table to the frontend shell so the menu and
// route guards agree with the API guards.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/navigation", h.Menu)
	protected.GET("/access", h.Check)
}

type accessResponse struct {
	Route    string          `json:"route"`
	Section  string          `json:"section"`
	Decision access.Decision `json:"decision"`
	Allowed  bool            `json:"allowed"`
}

// Menu lists the sidebar entries visible to the caller.
func (h *Handler) Menu(c *gin.Context) {
	role := middleware.Role(c)
	response.Success(c, http.StatusOK, gin.H{
		"role":  role,
		"items": access.Menu(role),
	})
}

// Check answers GET /access?route=/users for the caller's session.
func (h *Handler) Check(c *gin.Context) {
	route := c.Query("route")
	if route == "" {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query",
			map[string]string{"route": "is required"})
		return
	}

	_, authenticated := c.Get("role")
	decision := access.Gate(route, access.Session{
		Authenticated: authenticated,
		Resolved:      true,
		Role:          middleware.Role(c),
	})
	response.Success(c, http.StatusOK, accessResponse{
		Route:    route,
		Section:  access.Section(route),
		Decision: decision,
		Allowed:  decision == access.DecisionAllow,
	})
}
