package repository

import (
	"context"

	"equipecho/internal/domain"

	"gorm.io/gorm"
)

var inventorySearchColumns = []string{"name", "category", "location"}

type InventoryRepository struct {
	*Table[domain.InventoryItem]
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{
		Table: NewTable[domain.InventoryItem](db, "inventory_items",
			"id", "name", "category", "quantity", "minimum", "unit", "location",
			"status", "last_movement", "created_at",
		),
	}
}

func (r *InventoryRepository) ListMatching(ctx context.Context, term string) ([]domain.InventoryItem, error) {
	return r.Search(ctx, inventorySearchColumns, term, Asc("id"))
}

// Categories returns the distinct categories in alphabetical order.
func (r *InventoryRepository) Categories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	err := conn(ctx, r.db).Table(r.name).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, classify("categories", r.name, err)
	}
	return categories, nil
}

// AdjustQuantity adds delta to the stored quantity in one statement and
// stamps last_movement. The change is applied only while the result stays
// at or above zero; otherwise applied is false and the current row is returned.
func (r *InventoryRepository) AdjustQuantity(ctx context.Context, id int64, delta int, day domain.Date) (*domain.InventoryItem, bool, error) {
	res := conn(ctx, r.db).Table(r.name).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(map[string]any{
			"quantity":      gorm.Expr("quantity + ?", delta),
			"last_movement": &day,
		})
	if res.Error != nil {
		return nil, false, classify("adjust", r.name, res.Error)
	}

	item, err := r.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return item, res.RowsAffected > 0, nil
}
