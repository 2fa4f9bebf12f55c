package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"equipecho/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEquipments struct {
	list []domain.Equipment
	err  error
}

func (s stubEquipments) ListMatching(ctx context.Context, term string) ([]domain.Equipment, error) {
	return s.list, s.err
}

type stubItems struct {
	list []domain.InventoryItem
}

func (s stubItems) ListMatching(ctx context.Context, term string) ([]domain.InventoryItem, error) {
	return s.list, nil
}

type recorded struct {
	byStatus map[domain.EquipmentStatus]int
	lowStock int
}

func (r *recorded) RecordSummary(byStatus map[domain.EquipmentStatus]int, lowStock int) {
	r.byStatus = byStatus
	r.lowStock = lowStock
}

func date(m time.Month, d int) *domain.Date {
	v := domain.NewDate(2024, m, d)
	return &v
}

func fixture() (stubEquipments, stubItems) {
	equipments := stubEquipments{list: []domain.Equipment{
		{ID: 1, Name: "Lathe", MaintenanceInterval: 30, NextMaintenance: date(time.March, 30), Status: domain.StatusOverdue},
		{ID: 2, Name: "Press", MaintenanceInterval: 30, NextMaintenance: date(time.March, 5)},
		{ID: 3, Name: "Saw", MaintenanceInterval: 30, NextMaintenance: date(time.February, 20)},
		{ID: 4, Name: "Drill", MaintenanceInterval: 30, NextMaintenance: date(time.March, 12)},
		{ID: 5, Name: "Oven", MaintenanceInterval: 30, NextMaintenance: date(time.March, 5)},
		{ID: 6, Name: "Pump", MaintenanceInterval: 30},
	}}
	items := stubItems{list: []domain.InventoryItem{
		{ID: 1, Name: "A", Quantity: 5, Minimum: 5, Status: domain.InventoryAvailable},
		{ID: 2, Name: "B", Quantity: 10, Minimum: 2, Status: domain.InventoryInUse},
		{ID: 3, Name: "C", Quantity: 0, Minimum: 1, Status: domain.InventoryAvailable},
	}}
	return equipments, items
}

func TestSummary(t *testing.T) {
	equipments, items := fixture()
	rec := &recorded{}
	svc := NewService(equipments, items, domain.FixedCalendar(domain.NewDate(2024, time.March, 10)), rec)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-03-10", s.Today.String())
	assert.Equal(t, 6, s.Equipment.Total)
	assert.Equal(t, 3, s.Equipment.ByStatus[domain.StatusOverdue])
	assert.Equal(t, 1, s.Equipment.ByStatus[domain.StatusWarning])
	assert.Equal(t, 2, s.Equipment.ByStatus[domain.StatusOnTime])

	require.Len(t, s.Equipment.Overdue, 3)
	assert.Equal(t, []int64{3, 2, 5}, []int64{s.Equipment.Overdue[0].ID, s.Equipment.Overdue[1].ID, s.Equipment.Overdue[2].ID})
	require.Len(t, s.Equipment.Warning, 1)
	assert.Equal(t, "Drill", s.Equipment.Warning[0].Name)

	assert.Equal(t, 3, s.Inventory.Total)
	assert.Equal(t, 2, s.Inventory.ByStatus[domain.InventoryAvailable])
	assert.Equal(t, 0, s.Inventory.ByStatus[domain.InventoryUnavailable])
	require.Len(t, s.Inventory.LowStock, 2)
	assert.Equal(t, domain.StockLow, s.Inventory.LowStock[0].Health)
	assert.Equal(t, domain.StockEmpty, s.Inventory.LowStock[1].Health)

	assert.Equal(t, 3, rec.byStatus[domain.StatusOverdue])
	assert.Equal(t, 2, rec.lowStock)
}

func TestSummary_StoreError(t *testing.T) {
	_, items := fixture()
	storeErr := &domain.StoreError{Op: "list", Table: "equipments", Err: errors.New("closed")}
	svc := NewService(stubEquipments{err: storeErr}, items, domain.FixedCalendar(domain.NewDate(2024, time.March, 10)), nil)

	_, err := svc.Summary(context.Background())
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestSummaryEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	equipments, items := fixture()
	h := NewHandler(NewService(equipments, items, domain.FixedCalendar(domain.NewDate(2024, time.March, 10)), nil))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", "User")
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api/v1"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var env struct {
		Data struct {
			Equipment struct {
				ByStatus map[string]int `json:"by_status"`
			} `json:"equipment"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, map[string]int{"OnTime": 2, "Warning": 1, "Overdue": 3}, env.Data.Equipment.ByStatus)
}
