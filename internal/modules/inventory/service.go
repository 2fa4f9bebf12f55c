package inventory

import (
	"context"
	"fmt"
	"strings"

	"equipecho/internal/domain"
)

const tableItems = "inventory_items"

type Service struct {
	items    ItemRepository
	tx       Transactor
	calendar domain.Calendar
	events   EventPublisher
}

func NewService(items ItemRepository, tx Transactor, calendar domain.Calendar, events EventPublisher) *Service {
	return &Service{items: items, tx: tx, calendar: calendar, events: events}
}

func (s *Service) publish(action string, id int64) {
	if s.events != nil {
		s.events.Publish(tableItems, action, id)
	}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.InventoryItem, error) {
	var want domain.StockHealth
	if f.Health != "" {
		want = domain.StockHealth(f.Health)
		switch want {
		case domain.StockOK, domain.StockLow, domain.StockEmpty:
		default:
			return nil, domain.NewValidationError("health", "must be one of OK, Low, Empty")
		}
	}

	items, err := s.items.ListMatching(ctx, f.Q)
	if err != nil {
		return nil, err
	}

	out := make([]domain.InventoryItem, 0, len(items))
	for _, it := range items {
		it.Refresh()
		if want != "" && it.Health != want {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// LowStock returns every item at or below its minimum, in id order.
func (s *Service) LowStock(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.items.ListMatching(ctx, "")
	if err != nil {
		return nil, err
	}
	low := domain.LowStockItems(items)
	for i := range low {
		low[i].Refresh()
	}
	return low, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.items.Categories(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	it, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Refresh()
	return it, nil
}

func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*domain.InventoryItem, error) {
	status := domain.InventoryStatus(strings.TrimSpace(req.Status))
	if status == "" {
		status = domain.InventoryAvailable
	}

	it := &domain.InventoryItem{
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
		Quantity: req.Quantity,
		Minimum:  req.Minimum,
		Unit:     strings.TrimSpace(req.Unit),
		Location: strings.TrimSpace(req.Location),
		Status:   status,
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}

	if err := s.items.Insert(ctx, it); err != nil {
		return nil, err
	}
	it.Refresh()
	s.publish("insert", it.ID)
	return it, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateItemRequest) (*domain.InventoryItem, error) {
	current, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	if req.Name != nil {
		merged.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		merged.Category = strings.TrimSpace(*req.Category)
	}
	if req.Quantity != nil {
		merged.Quantity = *req.Quantity
	}
	if req.Minimum != nil {
		merged.Minimum = *req.Minimum
	}
	if req.Unit != nil {
		merged.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Location != nil {
		merged.Location = strings.TrimSpace(*req.Location)
	}
	if req.Status != nil {
		merged.Status = domain.InventoryStatus(strings.TrimSpace(*req.Status))
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	changes := map[string]any{
		"name":     merged.Name,
		"category": merged.Category,
		"quantity": merged.Quantity,
		"minimum":  merged.Minimum,
		"unit":     merged.Unit,
		"location": merged.Location,
		"status":   merged.Status,
	}
	if merged.Quantity != current.Quantity {
		today := s.calendar.Today()
		changes["last_movement"] = &today
	}

	updated, err := s.items.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	updated.Refresh()
	s.publish("update", id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.publish("delete", id)
	return nil
}

// AdjustStock applies a stock entry (delta > 0) or withdrawal (delta < 0)
// and stamps the movement date. Stock never goes below zero, and concurrent
// movements on the same item all count.
func (s *Service) AdjustStock(ctx context.Context, id int64, delta int) (*domain.InventoryItem, error) {
	if delta == 0 {
		return nil, domain.NewValidationError("delta", "must not be zero")
	}

	var updated *domain.InventoryItem
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, applied, err := s.items.AdjustQuantity(ctx, id, delta, s.calendar.Today())
		if err != nil {
			return err
		}
		if !applied {
			return fmt.Errorf("%w: %d in stock, %d requested", ErrInsufficientStock, it.Quantity, -delta)
		}
		updated = it
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated.Refresh()
	s.publish("movement", id)
	return updated, nil
}
