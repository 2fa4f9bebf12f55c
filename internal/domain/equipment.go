package domain

import (
	"strings"
	"time"
)

type EquipmentStatus string

const (
	StatusOnTime  EquipmentStatus = "OnTime"
	StatusWarning EquipmentStatus = "Warning"
	StatusOverdue EquipmentStatus = "Overdue"
)

// WarningWindowDays is how many days ahead of the due date an equipment turns Warning.
const WarningWindowDays = 7

// ComputeStatus derives the maintenance status from the next due date.
// Due today is a Warning, not Overdue. No scheduled date means OnTime.
func ComputeStatus(next *Date, today Date) EquipmentStatus {
	if next == nil || next.IsZero() {
		return StatusOnTime
	}
	diff := today.DaysUntil(*next)
	switch {
	case diff < 0:
		return StatusOverdue
	case diff <= WarningWindowDays:
		return StatusWarning
	default:
		return StatusOnTime
	}
}

// Equipment is a tracked asset with periodic maintenance.
// Status is only a cache of ComputeStatus and is recomputed on every read.
type Equipment struct {
	ID                  int64           `json:"id" gorm:"primaryKey"`
	Name                string          `json:"name" gorm:"not null"`
	Model               string          `json:"model"`
	Sector              string          `json:"sector" gorm:"not null;index"`
	Responsible         string          `json:"responsible" gorm:"not null"`
	MaintenanceInterval int             `json:"maintenance_interval" gorm:"not null"`
	LastMaintenance     *Date           `json:"last_maintenance"`
	NextMaintenance     *Date           `json:"next_maintenance"`
	Status              EquipmentStatus `json:"status" gorm:"type:varchar(16);not null;default:OnTime"`
	CreatedAt           time.Time       `json:"created_at"`
}

func (Equipment) TableName() string { return "equipments" }

// Refresh recomputes the derived status against today.
func (e *Equipment) Refresh(today Date) {
	e.Status = ComputeStatus(e.NextMaintenance, today)
}

// Validate checks the equipment-level invariants.
func (e *Equipment) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(e.Name) == "" {
		verr.Add("name", "is required")
	}
	if strings.TrimSpace(e.Sector) == "" {
		verr.Add("sector", "is required")
	}
	if strings.TrimSpace(e.Responsible) == "" {
		verr.Add("responsible", "is required")
	}
	if e.MaintenanceInterval <= 0 {
		verr.Add("maintenance_interval", "must be a positive number of days")
	}
	return verr.OrNil()
}

// ScheduleAfter records a maintenance performed on the given date and
// moves the next due date forward by the maintenance interval.
func (e *Equipment) ScheduleAfter(performed Date, today Date) error {
	if e.MaintenanceInterval <= 0 {
		return NewValidationError("maintenance_interval", "must be a positive number of days")
	}
	last := performed
	next := performed.AddDays(e.MaintenanceInterval)
	e.LastMaintenance = &last
	e.NextMaintenance = &next
	e.Refresh(today)
	return nil
}

// MaintenanceType distinguishes planned from reactive maintenance.
type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "Preventive"
	MaintenanceCorrective MaintenanceType = "Corrective"
)

func (t MaintenanceType) Valid() bool {
	return t == MaintenancePreventive || t == MaintenanceCorrective
}

// MaintenanceRecord is one completed maintenance event. Records are append-only.
type MaintenanceRecord struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	EquipmentID int64           `json:"equipment_id" gorm:"not null;index"`
	Date        Date            `json:"date" gorm:"not null"`
	Responsible string          `json:"responsible" gorm:"not null"`
	Description string          `json:"description"`
	Type        MaintenanceType `json:"type" gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time       `json:"created_at"`

	Equipment *Equipment `json:"-" gorm:"foreignKey:EquipmentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (MaintenanceRecord) TableName() string { return "maintenance_records" }
