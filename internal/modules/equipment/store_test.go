package equipment

import (
	"context"
	"errors"
	"path/filepath"
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

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "equipment.db"), logger.Default.LogMode(logger.Silent))
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

func setupTestService(t *testing.T, today domain.Date) (*Service, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewService(
		repository.NewEquipmentRepository(db),
		repository.NewMaintenanceRepository(db),
		repository.NewTransactor(db),
		domain.FixedCalendar(today),
		nil,
	)
	return svc, db
}

func TestRegisterMaintenanceRoundTrip(t *testing.T) {
	svc, _ := setupTestService(t, domain.NewDate(2024, time.February, 1))
	ctx := context.Background()

	last := domain.NewDate(2023, time.December, 1)
	eq, err := svc.Create(ctx, CreateEquipmentRequest{
		Name: "Compressor", Sector: "Plant", Responsible: "Ana", MaintenanceInterval: 30, LastMaintenance: &last,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOverdue, eq.Status)

	_, err = svc.RegisterMaintenance(ctx, eq.ID, MaintenanceEvent{
		Date: "2024-01-31", Responsible: "Rui", Type: "Corrective", Description: "replaced belt",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", got.LastMaintenance.String())
	assert.Equal(t, "2024-03-01", got.NextMaintenance.String())
	assert.Equal(t, domain.StatusOnTime, got.Status)

	history, err := svc.History(ctx, eq.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "2024-01-31", history[0].Date.String())
	assert.Equal(t, domain.MaintenanceCorrective, history[0].Type)
	assert.Equal(t, "replaced belt", history[0].Description)
}

func TestStatusIsRecomputedOnRead(t *testing.T) {
	db := setupTestDB(t)
	equipments := repository.NewEquipmentRepository(db)
	ctx := context.Background()

	next := domain.NewDate(2024, time.March, 10)
	require.NoError(t, equipments.Insert(ctx, &domain.Equipment{
		Name: "Lift", Sector: "Plant", Responsible: "Ana", MaintenanceInterval: 30,
		NextMaintenance: &next, Status: domain.StatusOnTime,
	}))

	later := NewService(equipments, repository.NewMaintenanceRepository(db), repository.NewTransactor(db),
		domain.FixedCalendar(domain.NewDate(2024, time.March, 11)), nil)

	items, err := later.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.StatusOverdue, items[0].Status)
}

func TestDeleteCascadesHistory(t *testing.T) {
	svc, db := setupTestService(t, domain.NewDate(2024, time.February, 1))
	ctx := context.Background()

	eq, err := svc.Create(ctx, CreateEquipmentRequest{Name: "Drill", Sector: "Workshop", Responsible: "Ana", MaintenanceInterval: 10})
	require.NoError(t, err)
	for _, d := range []string{"2024-01-10", "2024-01-20"} {
		_, err := svc.RegisterMaintenance(ctx, eq.ID, MaintenanceEvent{Date: d, Responsible: "Rui", Type: "Preventive"})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, eq.ID))

	var remaining int64
	require.NoError(t, db.Table("maintenance_records").Where("equipment_id = ?", eq.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	_, err = svc.Get(ctx, eq.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = svc.Delete(ctx, eq.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// failingUpdates lets inserts through but fails every equipment update.
type failingUpdates struct {
	*repository.EquipmentRepository
}

func (failingUpdates) Update(ctx context.Context, id int64, changes map[string]any) (*domain.Equipment, error) {
	return nil, &domain.StoreError{Op: "update", Table: "equipments", Err: errors.New("connection lost")}
}

func TestRegisterMaintenanceRollsBackRecordWhenScheduleFails(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	equipments := repository.NewEquipmentRepository(db)
	records := repository.NewMaintenanceRepository(db)

	eq := &domain.Equipment{Name: "Oven", Sector: "Kitchen", Responsible: "Ana", MaintenanceInterval: 15, Status: domain.StatusOnTime}
	require.NoError(t, equipments.Insert(ctx, eq))

	svc := NewService(failingUpdates{equipments}, records, repository.NewTransactor(db),
		domain.FixedCalendar(domain.NewDate(2024, time.February, 1)), nil)

	_, err := svc.RegisterMaintenance(ctx, eq.ID, MaintenanceEvent{Date: "2024-01-31", Responsible: "Rui", Type: "Preventive"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScheduleNotSaved))

	history, err := records.History(ctx, eq.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	stored, err := equipments.Get(ctx, eq.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.LastMaintenance)
}

func TestUpdateClearsMaintenanceDates(t *testing.T) {
	svc, _ := setupTestService(t, domain.NewDate(2024, time.February, 1))
	ctx := context.Background()

	last := domain.NewDate(2023, time.December, 1)
	eq, err := svc.Create(ctx, CreateEquipmentRequest{
		Name: "Boiler", Sector: "Plant", Responsible: "Ana", MaintenanceInterval: 30, LastMaintenance: &last,
	})
	require.NoError(t, err)
	require.NotNil(t, eq.NextMaintenance)
	assert.Equal(t, domain.StatusOverdue, eq.Status)

	got, err := svc.Update(ctx, eq.ID, UpdateEquipmentRequest{ClearNextMaintenance: true})
	require.NoError(t, err)
	assert.Nil(t, got.NextMaintenance)
	require.NotNil(t, got.LastMaintenance)
	assert.Equal(t, domain.StatusOnTime, got.Status)

	got, err = svc.Update(ctx, eq.ID, UpdateEquipmentRequest{ClearLastMaintenance: true})
	require.NoError(t, err)
	assert.Nil(t, got.LastMaintenance)
	assert.Nil(t, got.NextMaintenance)

	stored, err := svc.Get(ctx, eq.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.LastMaintenance)
	assert.Nil(t, stored.NextMaintenance)

	next := domain.NewDate(2024, time.March, 1)
	_, err = svc.Update(ctx, eq.ID, UpdateEquipmentRequest{NextMaintenance: &next, ClearNextMaintenance: true})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
