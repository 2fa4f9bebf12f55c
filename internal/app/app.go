package app

import (
	"net/http"
	"time"

	"equipecho/internal/config"
	"equipecho/internal/domain"
	"equipecho/internal/metrics"
	"equipecho/internal/middleware"
	"equipecho/internal/modules/auth"
	"equipecho/internal/modules/dashboard"
	"equipecho/internal/modules/equipment"
	"equipecho/internal/modules/inventory"
	"equipecho/internal/modules/lookup"
	"equipecho/internal/modules/navigation"
	"equipecho/internal/modules/users"
	jwtsvc "equipecho/internal/pkg/jwt"
	"equipecho/internal/realtime"
	"equipecho/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App is the assembled HTTP server and the pieces main needs to shut it down.
type App struct {
	Router  *gin.Engine
	Hub     *realtime.Hub
	Metrics *metrics.Metrics
	JWT     *jwtsvc.Service
}

// Option overrides a default dependency, mostly for tests.
type Option func(*options)

type options struct {
	calendar *domain.Calendar
}

// WithCalendar fixes what the services consider "today".
func WithCalendar(c domain.Calendar) Option {
	return func(o *options) { o.calendar = &c }
}

func New(cfg *config.Config, db *gorm.DB, opts ...Option) *App {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	calendar := domain.NewCalendar(cfg.Location, time.Now)
	if o.calendar != nil {
		calendar = *o.calendar
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := realtime.NewHub()
	m := metrics.New()
	m.TrackGauge("websocket_clients", "Open change-feed connections", func() float64 {
		return float64(hub.ClientCount())
	})

	// repositories
	userRepo := repository.NewUserRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	sectorRepo := repository.NewLookupRepository(db, domain.LookupSectors)
	responsibleRepo := repository.NewLookupRepository(db, domain.LookupResponsibles)
	tx := repository.NewTransactor(db)

	// services
	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	equipmentHandler := equipment.NewHandler(equipment.NewService(equipmentRepo, maintenanceRepo, tx, calendar, hub))
	inventoryHandler := inventory.NewHandler(inventory.NewService(inventoryRepo, tx, calendar, hub))
	usersHandler := users.NewHandler(users.NewService(userRepo, hub))
	sectorsHandler := lookup.NewHandler(lookup.NewService(domain.LookupSectors, sectorRepo, hub))
	responsiblesHandler := lookup.NewHandler(lookup.NewService(domain.LookupResponsibles, responsibleRepo, hub))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(equipmentRepo, inventoryRepo, calendar, m))
	navigationHandler := navigation.NewHandler()
	wsHandler := realtime.NewHandler(hub, j, cfg.CORSOrigins...)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins...))
	if cfg.Metrics.Enabled {
		r.Use(m.Middleware())
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		wsHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			navigationHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
			equipmentHandler.RegisterRoutes(protected)
			inventoryHandler.RegisterRoutes(protected)
			usersHandler.RegisterRoutes(protected)
			sectorsHandler.RegisterRoutes(protected)
			responsiblesHandler.RegisterRoutes(protected)
		}
	}

	return &App{Router: r, Hub: hub, Metrics: m, JWT: j}
}
