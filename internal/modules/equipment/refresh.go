package equipment

import (
	"context"

	"equipecho/internal/domain"
)

// StatusStore is what the status refresh job needs from the equipment table.
type StatusStore interface {
	ListMatching(ctx context.Context, term string) ([]domain.Equipment, error)
	SaveStatus(ctx context.Context, id int64, status domain.EquipmentStatus) error
}

type RefreshReport struct {
	Total    int
	Changed  int
	ByStatus map[domain.EquipmentStatus]int
}

// RefreshStatuses rewrites the cached status column of every equipment whose
// status moved since it was last saved. Reads never depend on this column;
// it exists for external reporting that queries the table directly.
func RefreshStatuses(ctx context.Context, store StatusStore, today domain.Date) (*RefreshReport, error) {
	list, err := store.ListMatching(ctx, "")
	if err != nil {
		return nil, err
	}

	report := &RefreshReport{Total: len(list), ByStatus: make(map[domain.EquipmentStatus]int, 3)}
	for _, e := range list {
		cached := e.Status
		e.Refresh(today)
		report.ByStatus[e.Status]++
		if e.Status == cached {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := store.SaveStatus(ctx, e.ID, e.Status); err != nil {
			return report, err
		}
		report.Changed++
	}
	return report, nil
}
