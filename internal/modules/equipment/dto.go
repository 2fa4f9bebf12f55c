package equipment

import "equipecho/internal/domain"

type CreateEquipmentRequest struct {
	Name                string       `json:"name" binding:"required"`
	Model               string       `json:"model"`
	Sector              string       `json:"sector" binding:"required"`
	Responsible         string       `json:"responsible" binding:"required"`
	MaintenanceInterval int          `json:"maintenance_interval" binding:"required,gt=0"`
	LastMaintenance     *domain.Date `json:"last_maintenance"`
	NextMaintenance     *domain.Date `json:"next_maintenance"`
}

// UpdateEquipmentRequest is a partial update; nil fields stay unchanged.
// A JSON null is the same as omitting the field, so dates are removed with
// ClearLastMaintenance / ClearNextMaintenance instead.
type UpdateEquipmentRequest struct {
	Name                *string      `json:"name"`
	Model               *string      `json:"model"`
	Sector              *string      `json:"sector"`
	Responsible         *string      `json:"responsible"`
	MaintenanceInterval *int         `json:"maintenance_interval" binding:"omitempty,gt=0"`
	LastMaintenance     *domain.Date `json:"last_maintenance"`
	NextMaintenance     *domain.Date `json:"next_maintenance"`

	ClearLastMaintenance bool `json:"clear_last_maintenance"`
	ClearNextMaintenance bool `json:"clear_next_maintenance"`
}

// MaintenanceEvent is a completed maintenance as submitted by the form.
// Date and Type are validated by the service.
type MaintenanceEvent struct {
	Date        string `json:"date"`
	Responsible string `json:"responsible"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type ListFilter struct {
	Q      string `form:"q"`
	Status string `form:"status"`
}

type MaintenanceResult struct {
	Equipment *domain.Equipment         `json:"equipment"`
	Record    *domain.MaintenanceRecord `json:"record"`
}
