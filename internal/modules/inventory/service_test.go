package inventory

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"equipecho/internal/database"
	"equipecho/internal/domain"
	"equipecho/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testToday = domain.NewDate(2024, time.February, 10)

type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) Publish(table, action string, id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, table+":"+action)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "inventory.db"), logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

func setupTestService(t *testing.T) (*Service, *eventRecorder) {
	t.Helper()
	db := setupTestDB(t)
	events := &eventRecorder{}
	svc := NewService(
		repository.NewInventoryRepository(db),
		repository.NewTransactor(db),
		domain.FixedCalendar(testToday),
		events,
	)
	return svc, events
}

func mustCreate(t *testing.T, svc *Service, name, category string, quantity, minimum int) *domain.InventoryItem {
	t.Helper()
	it, err := svc.Create(context.Background(), CreateItemRequest{
		Name: name, Category: category, Quantity: quantity, Minimum: minimum, Unit: "pcs",
	})
	require.NoError(t, err)
	return it
}

func TestCreateDefaultsAndHealth(t *testing.T) {
	svc, events := setupTestService(t)

	it := mustCreate(t, svc, " Filter ", "Spare parts", 3, 5)
	assert.Equal(t, "Filter", it.Name)
	assert.Equal(t, domain.InventoryAvailable, it.Status)
	assert.Equal(t, domain.StockLow, it.Health)
	assert.Nil(t, it.LastMovement)
	assert.Equal(t, []string{"inventory_items:insert"}, events.events)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.Create(context.Background(), CreateItemRequest{Name: "Filter", Category: "Parts", Quantity: 1, Minimum: 0})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "minimum")

	_, err = svc.Create(context.Background(), CreateItemRequest{Name: "Filter", Category: "Parts", Quantity: 1, Minimum: 1, Status: "Lost"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")
}

func TestLowStockKeepsIDOrder(t *testing.T) {
	svc, _ := setupTestService(t)

	a := mustCreate(t, svc, "A", "Parts", 5, 5)
	mustCreate(t, svc, "B", "Parts", 10, 2)
	c := mustCreate(t, svc, "C", "Tools", 0, 1)

	low, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, a.ID, low[0].ID)
	assert.Equal(t, domain.StockLow, low[0].Health)
	assert.Equal(t, c.ID, low[1].ID)
	assert.Equal(t, domain.StockEmpty, low[1].Health)

	empty, err := svc.List(context.Background(), ListFilter{Health: "Empty"})
	require.NoError(t, err)
	require.Len(t, empty, 1)
	assert.Equal(t, "C", empty[0].Name)

	_, err = svc.List(context.Background(), ListFilter{Health: "Critical"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Parts", "Tools"}, categories)
}

func TestAdjustStock(t *testing.T) {
	svc, events := setupTestService(t)
	ctx := context.Background()
	it := mustCreate(t, svc, "Gloves", "Safety", 4, 2)

	got, err := svc.AdjustStock(ctx, it.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, domain.StockLow, got.Health)
	require.NotNil(t, got.LastMovement)
	assert.Equal(t, testToday, *got.LastMovement)

	_, err = svc.AdjustStock(ctx, it.ID, -2)
	assert.True(t, errors.Is(err, ErrInsufficientStock))

	stored, err := svc.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Quantity)

	_, err = svc.AdjustStock(ctx, it.ID, 0)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.AdjustStock(ctx, 999, 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Equal(t, []string{"inventory_items:insert", "inventory_items:movement"}, events.events)
}

func TestAdjustStockConcurrentWithdrawalsAllCount(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	svc := NewService(repository.NewInventoryRepository(db), repository.NewTransactor(db), domain.FixedCalendar(testToday), nil)
	ctx := context.Background()
	it := mustCreate(t, svc, "Filters", "Parts", 5, 1)

	const workers = 8
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AdjustStock(ctx, it.ID, -1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, workers-5, rejected)

	stored, err := svc.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Quantity)
}

func TestUpdateStampsMovementOnlyWhenQuantityChanges(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	it := mustCreate(t, svc, "Oil", "Fluids", 10, 2)

	location := "Shelf 3"
	got, err := svc.Update(ctx, it.ID, UpdateItemRequest{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Shelf 3", got.Location)
	assert.Nil(t, got.LastMovement)

	quantity := 0
	got, err = svc.Update(ctx, it.ID, UpdateItemRequest{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, domain.StockEmpty, got.Health)
	require.NotNil(t, got.LastMovement)

	status := "Broken"
	_, err = svc.Update(ctx, it.ID, UpdateItemRequest{Status: &status})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestDeleteItem(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	it := mustCreate(t, svc, "Tape", "Supplies", 1, 1)

	require.NoError(t, svc.Delete(ctx, it.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, it.ID), domain.ErrNotFound))
}
