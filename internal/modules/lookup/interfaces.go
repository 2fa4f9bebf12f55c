package lookup

import (
	"context"

	"equipecho/internal/domain"
)

type EntryRepository interface {
	ListByName(ctx context.Context) ([]domain.LookupEntry, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, e *domain.LookupEntry) error
	Delete(ctx context.Context, id int64) error
}

type EventPublisher interface {
	Publish(table, action string, id int64)
}
