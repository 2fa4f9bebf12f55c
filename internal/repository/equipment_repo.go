package repository

import (
	"context"

	"equipecho/internal/domain"

	"gorm.io/gorm"
)

var equipmentSearchColumns = []string{"name", "model", "responsible", "sector"}

type EquipmentRepository struct {
	*Table[domain.Equipment]
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{
		Table: NewTable[domain.Equipment](db, "equipments",
			"id", "name", "model", "sector", "responsible", "maintenance_interval",
			"last_maintenance", "next_maintenance", "status", "created_at",
		),
	}
}

// ListMatching returns equipment ordered by id, optionally narrowed by a search term.
func (r *EquipmentRepository) ListMatching(ctx context.Context, term string) ([]domain.Equipment, error) {
	return r.Search(ctx, equipmentSearchColumns, term, Asc("id"))
}

func (r *EquipmentRepository) SaveStatus(ctx context.Context, id int64, status domain.EquipmentStatus) error {
	_, err := r.Update(ctx, id, map[string]any{"status": status})
	return err
}

type MaintenanceRepository struct {
	*Table[domain.MaintenanceRecord]
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{
		Table: NewTable[domain.MaintenanceRecord](db, "maintenance_records",
			"id", "equipment_id", "date", "responsible", "description", "type", "created_at",
		),
	}
}

// History lists the records of one equipment, newest first.
func (r *MaintenanceRepository) History(ctx context.Context, equipmentID int64) ([]domain.MaintenanceRecord, error) {
	return r.FilterEq(ctx, "equipment_id", equipmentID, Desc("date"), Desc("id"))
}

func (r *MaintenanceRepository) DeleteByEquipment(ctx context.Context, equipmentID int64) (int64, error) {
	return r.DeleteWhere(ctx, "equipment_id", equipmentID)
}
