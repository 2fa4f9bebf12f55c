package equipment

import (
	"context"

	"equipecho/internal/domain"
)

// EquipmentRepository — only the methods the equipment service uses
type EquipmentRepository interface {
	ListMatching(ctx context.Context, term string) ([]domain.Equipment, error)
	Get(ctx context.Context, id int64) (*domain.Equipment, error)
	Insert(ctx context.Context, e *domain.Equipment) error
	Update(ctx context.Context, id int64, changes map[string]any) (*domain.Equipment, error)
	Delete(ctx context.Context, id int64) error
}

type MaintenanceRepository interface {
	History(ctx context.Context, equipmentID int64) ([]domain.MaintenanceRecord, error)
	Insert(ctx context.Context, r *domain.MaintenanceRecord) error
	DeleteByEquipment(ctx context.Context, equipmentID int64) (int64, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher notifies open dashboards that a table changed.
type EventPublisher interface {
	Publish(table, action string, id int64)
}
