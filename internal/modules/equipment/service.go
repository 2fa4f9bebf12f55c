package equipment

import (
	"context"
	"fmt"
	"strings"

	"equipecho/internal/domain"
)

const tableEquipments = "equipments"

type Service struct {
	equipments EquipmentRepository
	records    MaintenanceRepository
	tx         Transactor
	calendar   domain.Calendar
	events     EventPublisher
}

func NewService(equipments EquipmentRepository, records MaintenanceRepository, tx Transactor, calendar domain.Calendar, events EventPublisher) *Service {
	return &Service{
		equipments: equipments,
		records:    records,
		tx:         tx,
		calendar:   calendar,
		events:     events,
	}
}

func (s *Service) publish(action string, id int64) {
	if s.events != nil {
		s.events.Publish(tableEquipments, action, id)
	}
}

// List returns equipment ordered by id with statuses computed for today.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Equipment, error) {
	var want domain.EquipmentStatus
	if f.Status != "" {
		want = domain.EquipmentStatus(f.Status)
		switch want {
		case domain.StatusOnTime, domain.StatusWarning, domain.StatusOverdue:
		default:
			return nil, domain.NewValidationError("status", "must be one of OnTime, Warning, Overdue")
		}
	}

	items, err := s.equipments.ListMatching(ctx, f.Q)
	if err != nil {
		return nil, err
	}

	today := s.calendar.Today()
	out := make([]domain.Equipment, 0, len(items))
	for _, e := range items {
		e.Refresh(today)
		if want != "" && e.Status != want {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	e, err := s.equipments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Refresh(s.calendar.Today())
	return e, nil
}

// Create stores a new equipment. Without an explicit next date the first
// maintenance falls one interval after the last one, or after today.
func (s *Service) Create(ctx context.Context, req CreateEquipmentRequest) (*domain.Equipment, error) {
	e := &domain.Equipment{
		Name:                strings.TrimSpace(req.Name),
		Model:               strings.TrimSpace(req.Model),
		Sector:              strings.TrimSpace(req.Sector),
		Responsible:         strings.TrimSpace(req.Responsible),
		MaintenanceInterval: req.MaintenanceInterval,
		LastMaintenance:     req.LastMaintenance,
		NextMaintenance:     req.NextMaintenance,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	today := s.calendar.Today()
	if e.NextMaintenance == nil {
		base := today
		if e.LastMaintenance != nil {
			base = *e.LastMaintenance
		}
		next := base.AddDays(e.MaintenanceInterval)
		e.NextMaintenance = &next
	}
	e.Refresh(today)

	if err := s.equipments.Insert(ctx, e); err != nil {
		return nil, err
	}
	s.publish("insert", e.ID)
	return e, nil
}

// Update applies a partial change. When the last date or the interval
// changes and no next date is given, the next date is recomputed.
// A cleared date stays empty.
func (s *Service) Update(ctx context.Context, id int64, req UpdateEquipmentRequest) (*domain.Equipment, error) {
	verr := &domain.ValidationError{}
	if req.ClearLastMaintenance && req.LastMaintenance != nil {
		verr.Add("last_maintenance", "cannot be set and cleared together")
	}
	if req.ClearNextMaintenance && req.NextMaintenance != nil {
		verr.Add("next_maintenance", "cannot be set and cleared together")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	current, err := s.equipments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	if req.Name != nil {
		merged.Name = strings.TrimSpace(*req.Name)
	}
	if req.Model != nil {
		merged.Model = strings.TrimSpace(*req.Model)
	}
	if req.Sector != nil {
		merged.Sector = strings.TrimSpace(*req.Sector)
	}
	if req.Responsible != nil {
		merged.Responsible = strings.TrimSpace(*req.Responsible)
	}
	if req.MaintenanceInterval != nil {
		merged.MaintenanceInterval = *req.MaintenanceInterval
	}
	if req.LastMaintenance != nil {
		merged.LastMaintenance = req.LastMaintenance
	}
	if req.ClearLastMaintenance {
		merged.LastMaintenance = nil
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	scheduleChanged := req.LastMaintenance != nil || req.MaintenanceInterval != nil
	switch {
	case req.ClearNextMaintenance:
		merged.NextMaintenance = nil
	case req.NextMaintenance != nil:
		merged.NextMaintenance = req.NextMaintenance
	case scheduleChanged && merged.LastMaintenance != nil:
		next := merged.LastMaintenance.AddDays(merged.MaintenanceInterval)
		merged.NextMaintenance = &next
	}

	today := s.calendar.Today()
	merged.Refresh(today)

	updated, err := s.equipments.Update(ctx, id, map[string]any{
		"name":                 merged.Name,
		"model":                merged.Model,
		"sector":               merged.Sector,
		"responsible":          merged.Responsible,
		"maintenance_interval": merged.MaintenanceInterval,
		"last_maintenance":     merged.LastMaintenance,
		"next_maintenance":     merged.NextMaintenance,
		"status":               merged.Status,
	})
	if err != nil {
		return nil, err
	}
	updated.Refresh(today)
	s.publish("update", id)
	return updated, nil
}

// Delete removes the equipment together with its maintenance history.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.records.DeleteByEquipment(ctx, id); err != nil {
			return err
		}
		return s.equipments.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.publish("delete", id)
	return nil
}

// RegisterMaintenance appends a maintenance record and moves the equipment
// schedule forward by its interval. Both writes commit together or not at all.
func (s *Service) RegisterMaintenance(ctx context.Context, equipmentID int64, ev MaintenanceEvent) (*MaintenanceResult, error) {
	verr := &domain.ValidationError{}
	date, err := domain.ParseDate(ev.Date)
	if err != nil {
		verr.Add("date", "must be a date in YYYY-MM-DD format")
	}
	responsible := strings.TrimSpace(ev.Responsible)
	if responsible == "" {
		verr.Add("responsible", "is required")
	}
	kind := domain.MaintenanceType(strings.TrimSpace(ev.Type))
	if !kind.Valid() {
		verr.Add("type", "must be Preventive or Corrective")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	eq, err := s.equipments.Get(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	today := s.calendar.Today()
	if err := eq.ScheduleAfter(date, today); err != nil {
		return nil, err
	}

	record := &domain.MaintenanceRecord{
		EquipmentID: equipmentID,
		Date:        date,
		Responsible: responsible,
		Description: strings.TrimSpace(ev.Description),
		Type:        kind,
	}

	var updated *domain.Equipment
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.records.Insert(ctx, record); err != nil {
			return fmt.Errorf("%w: %w", ErrRecordNotSaved, err)
		}
		u, err := s.equipments.Update(ctx, equipmentID, map[string]any{
			"last_maintenance": eq.LastMaintenance,
			"next_maintenance": eq.NextMaintenance,
			"status":           eq.Status,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScheduleNotSaved, err)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated.Refresh(today)
	s.publish("maintenance", equipmentID)
	return &MaintenanceResult{Equipment: updated, Record: record}, nil
}

// History lists the maintenance records of one equipment, newest first.
func (s *Service) History(ctx context.Context, equipmentID int64) ([]domain.MaintenanceRecord, error) {
	if _, err := s.equipments.Get(ctx, equipmentID); err != nil {
		return nil, err
	}
	return s.records.History(ctx, equipmentID)
}
