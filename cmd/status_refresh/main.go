package main

import (
	"context"
	"log"
	"time"

	"equipecho/internal/config"
	"equipecho/internal/database"
	"equipecho/internal/domain"
	"equipecho/internal/modules/equipment"
	"equipecho/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	today := domain.NewCalendar(cfg.Location, time.Now).Today()
	report, err := equipment.RefreshStatuses(ctx, repository.NewEquipmentRepository(db), today)
	if err != nil {
		log.Fatalf("status refresh failed: %v", err)
	}

	log.Printf("status refresh completed: today=%s total=%d changed=%d on_time=%d warning=%d overdue=%d",
		today, report.Total, report.Changed,
		report.ByStatus[domain.StatusOnTime], report.ByStatus[domain.StatusWarning], report.ByStatus[domain.StatusOverdue])
}
