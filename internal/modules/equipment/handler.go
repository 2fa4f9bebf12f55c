package equipment

import (
	"errors"
	"net/http"
	"strconv"

	"equipecho/internal/access"
	"equipecho/internal/domain"
	"equipecho/internal/middleware"
	"equipecho/internal/pkg/response"
	"equipecho/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /equipments on an authenticated group.
// Every role may read; only Admin and Manager may change equipment.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/equipments", middleware.RequireRoute(access.RouteEquipments))
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/:id/maintenance", h.History)

	write := g.Group("", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager))
	write.POST("", h.Create)
	write.PATCH("/:id", h.Update)
	write.DELETE("/:id", h.Delete)
	write.POST("/:id/maintenance", h.RegisterMaintenance)
}

// List returns all equipment with current maintenance status.
// @Summary		List equipment
// @Tags		Equipment
// @Security	BearerAuth
// @Param		q		query	string	false	"Search in name, model, responsible, sector"
// @Param		status	query	string	false	"OnTime | Warning | Overdue"
// @Router		/equipments [GET]
func (h *Handler) List(c *gin.Context) {
	var f ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", validator.Describe(err))
		return
	}

	items, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// @Summary		Get equipment
// @Tags		Equipment
// @Router		/equipments/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

// Create adds equipment. The next maintenance date defaults to one interval ahead.
// @Summary		Create equipment
// @Tags		Equipment
// @Security	BearerAuth
// @Param		request	body	CreateEquipmentRequest	true	"Equipment data"
// @Router		/equipments [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Describe(err))
		return
	}

	e, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

// @Summary		Update equipment
// @Tags		Equipment
// @Security	BearerAuth
// @Param		request	body	UpdateEquipmentRequest	true	"Fields to change"
// @Router		/equipments/{id} [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Describe(err))
		return
	}

	e, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

// @Summary		Delete equipment and its maintenance history
// @Tags		Equipment
// @Security	BearerAuth
// @Router		/equipments/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// RegisterMaintenance records a completed maintenance and reschedules the equipment.
// @Summary		Register maintenance
// @Tags		Equipment
// @Security	BearerAuth
// @Param		request	body	MaintenanceEvent	true	"date (YYYY-MM-DD), responsible, description, type"
// @Router		/equipments/{id}/maintenance [POST]
func (h *Handler) RegisterMaintenance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var ev MaintenanceEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Describe(err))
		return
	}

	res, err := h.service.RegisterMaintenance(c.Request.Context(), id, ev)
	if err != nil {
		h.maintenanceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) maintenanceError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrStore) {
		switch {
		case errors.Is(err, ErrRecordNotSaved):
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "RECORD_NOT_SAVED", "The maintenance record could not be saved")
			return
		case errors.Is(err, ErrScheduleNotSaved):
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "SCHEDULE_NOT_SAVED", "The equipment schedule could not be updated; nothing was recorded")
			return
		}
	}
	response.FromError(c, err)
}

// @Summary		Maintenance history, newest first
// @Tags		Equipment
// @Router		/equipments/{id}/maintenance [GET]
func (h *Handler) History(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	records, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, records)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid equipment ID")
		return 0, false
	}
	return id, true
}
