package lookup

import (
	"context"
	"strings"

	"equipecho/internal/domain"
)

// Service manages one named list, e.g. sectors.
type Service struct {
	table   string
	entries EntryRepository
	events  EventPublisher
}

func NewService(table string, entries EntryRepository, events EventPublisher) *Service {
	return &Service{table: table, entries: entries, events: events}
}

func (s *Service) Table() string { return s.table }

func (s *Service) List(ctx context.Context) ([]domain.LookupEntry, error) {
	return s.entries.ListByName(ctx)
}

func (s *Service) Create(ctx context.Context, name string) (*domain.LookupEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	taken, err := s.entries.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	e := &domain.LookupEntry{Name: name}
	if err := s.entries.Insert(ctx, e); err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.Publish(s.table, "insert", e.ID)
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	if s.events != nil {
		s.events.Publish(s.table, "delete", id)
	}
	return nil
}
