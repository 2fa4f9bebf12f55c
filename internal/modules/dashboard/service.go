package dashboard

import (
	"context"
	"sort"

	"equipecho/internal/domain"
)

type Service struct {
	equipments EquipmentLister
	items      ItemLister
	calendar   domain.Calendar
	recorder   Recorder
}

func NewService(equipments EquipmentLister, items ItemLister, calendar domain.Calendar, recorder Recorder) *Service {
	return &Service{equipments: equipments, items: items, calendar: calendar, recorder: recorder}
}

// Summary recomputes every status against today; nothing cached is trusted.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	today := s.calendar.Today()

	equipments, err := s.equipments.ListMatching(ctx, "")
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListMatching(ctx, "")
	if err != nil {
		return nil, err
	}

	eq := EquipmentSummary{
		Total: len(equipments),
		ByStatus: map[domain.EquipmentStatus]int{
			domain.StatusOnTime:  0,
			domain.StatusWarning: 0,
			domain.StatusOverdue: 0,
		},
		Overdue: make([]domain.Equipment, 0),
		Warning: make([]domain.Equipment, 0),
	}
	for _, e := range equipments {
		e.Refresh(today)
		eq.ByStatus[e.Status]++
		switch e.Status {
		case domain.StatusOverdue:
			eq.Overdue = append(eq.Overdue, e)
		case domain.StatusWarning:
			eq.Warning = append(eq.Warning, e)
		}
	}
	sortByDueDate(eq.Overdue)
	sortByDueDate(eq.Warning)

	inv := InventorySummary{
		Total: len(items),
		ByStatus: map[domain.InventoryStatus]int{
			domain.InventoryAvailable:   0,
			domain.InventoryInUse:       0,
			domain.InventoryUnavailable: 0,
		},
		LowStock: domain.LowStockItems(items),
	}
	for _, it := range items {
		inv.ByStatus[it.Status]++
	}
	for i := range inv.LowStock {
		inv.LowStock[i].Refresh()
	}

	if s.recorder != nil {
		s.recorder.RecordSummary(eq.ByStatus, len(inv.LowStock))
	}

	return &Summary{Today: today, Equipment: eq, Inventory: inv}, nil
}

// sortByDueDate puts the earliest next maintenance first, ties by id.
// Only overdue or warning equipment reaches here, so NextMaintenance is set.
func sortByDueDate(list []domain.Equipment) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := *list[i].NextMaintenance, *list[j].NextMaintenance
		if !a.Equal(b) {
			return a.Before(b)
		}
		return list[i].ID < list[j].ID
	})
}
