package domain

import (
	"strings"
	"time"
)

// InventoryStatus is the operational state of an item. It is set by users, not derived.
type InventoryStatus string

const (
	InventoryAvailable   InventoryStatus = "Available"
	InventoryInUse       InventoryStatus = "InUse"
	InventoryUnavailable InventoryStatus = "Unavailable"
)

func (s InventoryStatus) Valid() bool {
	switch s {
	case InventoryAvailable, InventoryInUse, InventoryUnavailable:
		return true
	}
	return false
}

// StockHealth classifies quantity against the reorder threshold.
type StockHealth string

const (
	StockOK    StockHealth = "OK"
	StockLow   StockHealth = "Low"
	StockEmpty StockHealth = "Empty"
)

// EvaluateStock classifies a quantity against its minimum.
// A minimum <= 0 is a data-entry error callers reject with ValidateStockLevels.
func EvaluateStock(quantity, minimum int) StockHealth {
	switch {
	case quantity == 0:
		return StockEmpty
	case quantity <= minimum:
		return StockLow
	default:
		return StockOK
	}
}

func ValidateStockLevels(quantity, minimum int) error {
	verr := &ValidationError{}
	if quantity < 0 {
		verr.Add("quantity", "must not be negative")
	}
	if minimum <= 0 {
		verr.Add("minimum", "must be greater than zero")
	}
	return verr.OrNil()
}

type InventoryItem struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"not null"`
	Category     string          `json:"category" gorm:"not null;index"`
	Quantity     int             `json:"quantity" gorm:"not null;default:0"`
	Minimum      int             `json:"minimum" gorm:"not null"`
	Unit         string          `json:"unit"`
	Location     string          `json:"location"`
	Status       InventoryStatus `json:"status" gorm:"type:varchar(16);not null;default:Available"`
	LastMovement *Date           `json:"last_movement"`
	CreatedAt    time.Time       `json:"created_at"`

	Health StockHealth `json:"health" gorm:"-"`
}

func (InventoryItem) TableName() string { return "inventory_items" }

// Refresh fills the derived stock health.
func (i *InventoryItem) Refresh() {
	i.Health = EvaluateStock(i.Quantity, i.Minimum)
}

func (i *InventoryItem) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(i.Name) == "" {
		verr.Add("name", "is required")
	}
	if strings.TrimSpace(i.Category) == "" {
		verr.Add("category", "is required")
	}
	if err := ValidateStockLevels(i.Quantity, i.Minimum); err != nil {
		for k, v := range err.(*ValidationError).Fields {
			verr.Add(k, v)
		}
	}
	if !i.Status.Valid() {
		verr.Add("status", "must be one of Available, InUse, Unavailable")
	}
	return verr.OrNil()
}

// LowStockItems keeps, in input order, every item whose stock health is not OK.
func LowStockItems(items []InventoryItem) []InventoryItem {
	out := make([]InventoryItem, 0, len(items))
	for _, it := range items {
		if EvaluateStock(it.Quantity, it.Minimum) != StockOK {
			out = append(out, it)
		}
	}
	return out
}
