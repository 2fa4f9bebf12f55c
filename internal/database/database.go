package database

import (
	"fmt"
	"log"
	"strings"

	"equipecho/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	return Open(dsn, logger.Default.LogMode(logger.Warn))
}

// Open picks PostgreSQL for postgres:// DSNs and the pure-Go SQLite driver otherwise.
func Open(dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}

	if isPostgres(dsn) {
		log.Printf("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Printf("Using SQLite for local development: %s", dsn)
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        sqliteDSN(dsn),
		}),
		cfg,
	)
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// sqliteDSN turns on foreign keys so maintenance records cascade with their equipment.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

var lookupTables = []string{domain.LookupSectors, domain.LookupResponsibles}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Equipment{},
		&domain.MaintenanceRecord{},
		&domain.InventoryItem{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, table := range lookupTables {
		if err := db.Table(table).AutoMigrate(&domain.LookupEntry{}); err != nil {
			return fmt.Errorf("auto migrate %s: %w", table, err)
		}
		stmt := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_name ON %s (name)", table, table)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("index %s: %w", table, err)
		}
	}
	return nil
}
