package dashboard

import (
	"context"

	"equipecho/internal/domain"
)

type EquipmentLister interface {
	ListMatching(ctx context.Context, term string) ([]domain.Equipment, error)
}

type ItemLister interface {
	ListMatching(ctx context.Context, term string) ([]domain.InventoryItem, error)
}

// Recorder receives the headline numbers of every computed summary.
type Recorder interface {
	RecordSummary(byStatus map[domain.EquipmentStatus]int, lowStock int)
}
