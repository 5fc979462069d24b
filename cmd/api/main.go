package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"go-datamonitor/internal/archive"
	"go-datamonitor/internal/config"
	"go-datamonitor/internal/handler"
	"go-datamonitor/internal/identity"
	"go-datamonitor/internal/metrics"
	"go-datamonitor/internal/middleware"
	"go-datamonitor/internal/repository"
	"go-datamonitor/internal/seed"
	"go-datamonitor/internal/service"
	"go-datamonitor/internal/ws"
	"go-datamonitor/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Env
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	unitRepo := repository.NewUnitRepo(db)
	measurementRepo := repository.NewMeasurementRepo(db)

	// 3. Seed default units and admin user
	if err := seed.Defaults(unitRepo, userRepo, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("Warning: Failed to seed defaults: %v", err)
	}

	// 4. Setup WebSocket Hub and metrics
	wsHub := ws.NewHub()
	go wsHub.Run()
	m := metrics.New()

	store, err := archive.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to open export archive: %v", err)
	}
	if store != nil {
		log.Printf("Export archive enabled (%s)", store.Driver())
	}

	generator := seed.NewGenerator(measurementRepo, unitRepo, userRepo, cfg.AdminEmail,
		rand.New(rand.NewSource(cfg.SeedRandomSeed)), nil, wsHub, m)
	if cfg.SeedMockData {
		if _, err := generator.Generate(); err != nil {
			log.Printf("Warning: Failed to seed mock data: %v", err)
		}
	}

	// 5. Dependency Injection (Wiring Layers)
	provider := identity.NewProvider(userRepo, identity.Options{
		MaxFailedAttempts: cfg.LockoutMaxAttempts,
		LockoutDuration:   cfg.LockoutDuration,
	})

	authService := service.NewAuthService(userRepo, provider, m)
	userService := service.NewUserService(userRepo, unitRepo)
	unitService := service.NewUnitService(unitRepo, db)
	measurementService := service.NewMeasurementService(measurementRepo, db, wsHub, m)
	dashService := service.NewDashboardService(measurementRepo, nil)

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Units:        handler.NewUnitHandler(unitService),
		Users:        handler.NewUserHandler(userService),
		Measurements: handler.NewMeasurementHandler(measurementService, unitService),
		Dashboard:    handler.NewDashboardHandler(dashService),
		Exports:      handler.NewExportHandler(measurementService, store, m),
		Seed:         handler.NewSeedHandler(generator),
		Health:       handler.NewHealthHandler(db, wsHub, cfg.AppName),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS
	app.Use(middleware.Metrics(m))

	// 7. Routes
	handler.Register(app, handlers, userRepo, wsHub, m)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
