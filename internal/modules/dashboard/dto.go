package dashboard

import "equipecho/internal/domain"

type EquipmentSummary struct {
	Total    int                            `json:"total"`
	ByStatus map[domain.EquipmentStatus]int `json:"by_status"`
	Overdue  []domain.Equipment             `json:"overdue"`
	Warning  []domain.Equipment             `json:"warning"`
}

type InventorySummary struct {
	Total    int                            `json:"total"`
	ByStatus map[domain.InventoryStatus]int `json:"by_status"`
	LowStock []domain.InventoryItem         `json:"low_stock"`
}

type Summary struct {
	Today     domain.Date      `json:"today"`
	Equipment EquipmentSummary `json:"equipment"`
	Inventory InventorySummary `json:"inventory"`
}
