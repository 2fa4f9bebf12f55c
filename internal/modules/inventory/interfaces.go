package inventory

import (
	"context"

	"equipecho/internal/domain"
)

type ItemRepository interface {
	ListMatching(ctx context.Context, term string) ([]domain.InventoryItem, error)
	Get(ctx context.Context, id int64) (*domain.InventoryItem, error)
	Insert(ctx context.Context, item *domain.InventoryItem) error
	Update(ctx context.Context, id int64, changes map[string]any) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id int64) error
	AdjustQuantity(ctx context.Context, id int64, delta int, day domain.Date) (*domain.InventoryItem, bool, error)
	Categories(ctx context.Context) ([]string, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventPublisher interface {
	Publish(table, action string, id int64)
}
