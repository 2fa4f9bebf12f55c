package main

import (
	"log"
	"time"

	"equipecho/internal/config"
	"equipecho/internal/database"
	"equipecho/internal/domain"
	"equipecho/internal/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	today := domain.NewCalendar(cfg.Location, time.Now).Today()

	err = db.Transaction(func(tx *gorm.DB) error {
		// children before parents
		log.Println("Cleaning old data...")
		for _, table := range []string{"maintenance_records", "equipments", "inventory_items", domain.LookupSectors, domain.LookupResponsibles} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}

		if err := seedUsers(tx); err != nil {
			return err
		}
		if err := seedLookups(tx); err != nil {
			return err
		}
		if err := seedEquipment(tx, today); err != nil {
			return err
		}
		return seedInventory(tx, today)
	})
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Println("Seed completed")
}

func seedUsers(tx *gorm.DB) error {
	log.Println("Creating users...")
	accounts := []struct {
		name, email, password string
		role                  domain.Role
	}{
		{"Administrator", "admin@equipecho.local", "admin123", domain.RoleAdmin},
		{"Marta Sousa", "manager@equipecho.local", "manager123", domain.RoleManager},
		{"Tiago Lima", "user@equipecho.local", "user123", domain.RoleUser},
	}

	for _, a := range accounts {
		hash, err := utils.HashPassword(a.password)
		if err != nil {
			return err
		}
		u := domain.User{Name: a.name, Email: domain.NormalizeEmail(a.email), Role: a.role, PasswordHash: hash}

		// re-running the seed resets passwords and roles instead of failing on the unique email
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "role", "password_hash", "updated_at"}),
		}).Create(&u).Error
		if err != nil {
			return err
		}
		log.Printf("User ready: %s / %s (%s)", a.email, a.password, a.role)
	}
	return nil
}

func seedLookups(tx *gorm.DB) error {
	log.Println("Creating sectors and responsibles...")
	lists := map[string][]string{
		domain.LookupSectors:      {"Assembly", "Kitchen", "Maintenance shop", "Warehouse"},
		domain.LookupResponsibles: {"Ana Ribeiro", "Carlos Mendes", "Rui Alves"},
	}
	for table, names := range lists {
		for _, name := range names {
			if err := tx.Table(table).Create(&domain.LookupEntry{Name: name}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedEquipment(tx *gorm.DB, today domain.Date) error {
	log.Println("Creating equipment...")
	fleet := []struct {
		name, model, sector, responsible string
		interval                         int
		lastDaysAgo                      int
	}{
		{"Air compressor", "AC-300", "Maintenance shop", "Rui Alves", 30, 40},
		{"Industrial oven", "Forno X2", "Kitchen", "Ana Ribeiro", 60, 55},
		{"Forklift", "FL-25", "Warehouse", "Carlos Mendes", 90, 10},
		{"Conveyor belt", "CB-12", "Assembly", "Rui Alves", 15, 20},
		{"Lathe", "TL-9", "Maintenance shop", "Carlos Mendes", 120, 30},
	}

	for _, f := range fleet {
		last := today.AddDays(-f.lastDaysAgo)
		e := domain.Equipment{
			Name:                f.name,
			Model:               f.model,
			Sector:              f.sector,
			Responsible:         f.responsible,
			MaintenanceInterval: f.interval,
		}
		if err := e.ScheduleAfter(last, today); err != nil {
			return err
		}
		if err := tx.Create(&e).Error; err != nil {
			return err
		}

		record := domain.MaintenanceRecord{
			EquipmentID: e.ID,
			Date:        last,
			Responsible: f.responsible,
			Description: "Routine inspection",
			Type:        domain.MaintenancePreventive,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		log.Printf("Equipment %q next=%s status=%s", e.Name, e.NextMaintenance, e.Status)
	}
	return nil
}

func seedInventory(tx *gorm.DB, today domain.Date) error {
	log.Println("Creating inventory...")
	moved := today.AddDays(-3)
	items := []domain.InventoryItem{
		{Name: "V-belt A42", Category: "Spare parts", Quantity: 2, Minimum: 4, Unit: "pcs", Location: "Shelf A1", Status: domain.InventoryAvailable, LastMovement: &moved},
		{Name: "Hydraulic oil", Category: "Fluids", Quantity: 40, Minimum: 10, Unit: "L", Location: "Tank room", Status: domain.InventoryAvailable},
		{Name: "Safety gloves", Category: "PPE", Quantity: 0, Minimum: 20, Unit: "pairs", Location: "Locker 3", Status: domain.InventoryUnavailable},
		{Name: "Torque wrench", Category: "Tools", Quantity: 3, Minimum: 1, Unit: "pcs", Location: "Tool wall", Status: domain.InventoryInUse},
	}
	for i := range items {
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
