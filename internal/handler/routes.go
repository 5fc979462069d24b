package handler

import (
	"go-datamonitor/internal/metrics"
	"go-datamonitor/internal/middleware"
	"go-datamonitor/internal/model"
	"go-datamonitor/internal/repository"
	"go-datamonitor/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Auth         *AuthHandler
	Units        *UnitHandler
	Users        *UserHandler
	Measurements *MeasurementHandler
	Dashboard    *DashboardHandler
	Exports      *ExportHandler
	Seed         *SeedHandler
	Health       *HealthHandler
}

// Register mounts the public, authenticated and admin routes.
func Register(app *fiber.App, h Handlers, userRepo repository.UserRepository, hub *ws.Hub, m *metrics.Metrics) {
	app.Get("/health", h.Health.Health)
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/auth/login", h.Auth.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Get("/auth/me", h.Auth.Me)
	protected.Post("/auth/change-password", h.Auth.ChangePassword)

	// Units
	protected.Get("/units", h.Units.GetUnits)
	protected.Get("/units/code/:code", h.Units.GetUnitByCode)
	protected.Get("/units/:id", h.Units.GetUnit)
	protected.Post("/units", middleware.RequirePrivilege(model.PrivUnitManage), h.Units.CreateUnit)
	protected.Put("/units/:id", middleware.RequirePrivilege(model.PrivUnitManage), h.Units.UpdateUnit)
	protected.Delete("/units/:id", middleware.RequirePrivilege(model.PrivUnitManage), h.Units.DeleteUnit)

	// Measurements
	protected.Get("/measurements", h.Measurements.GetMeasurements)
	protected.Get("/measurements/recent", h.Measurements.GetRecent)
	protected.Get("/measurements/parameters", h.Measurements.GetParameters)
	protected.Post("/measurements/validate", h.Measurements.Validate)
	protected.Get("/measurements/:id", h.Measurements.GetMeasurement)
	protected.Post("/measurements", middleware.RequirePrivilege(model.PrivMeasurementWrite), h.Measurements.CreateMeasurement)
	protected.Put("/measurements/:id", middleware.RequirePrivilege(model.PrivMeasurementWrite), h.Measurements.UpdateMeasurement)
	protected.Delete("/measurements/:id", middleware.RequirePrivilege(model.PrivMeasurementDelete), h.Measurements.DeleteMeasurement)

	// Dashboard
	protected.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/trend", h.Dashboard.GetTrend)
	protected.Get("/dashboard/parameter-averages", h.Dashboard.GetParameterAverages)
	protected.Get("/dashboard/unit-counts", h.Dashboard.GetUnitCounts)

	// Exports; archive routes before :format
	exports := protected.Group("/exports", middleware.RequirePrivilege(model.PrivDataExport))
	exports.Post("/archive", h.Exports.Archive)
	exports.Get("/archive", h.Exports.ListArchive)
	exports.Get("/archive/*", h.Exports.GetArchived)
	exports.Get("/:format", h.Exports.Download)

	// Users
	users := protected.Group("/users", middleware.RequirePrivilege(model.PrivUserManage))
	users.Get("/", h.Users.GetUsers)
	users.Get("/:id", h.Users.GetUser)
	users.Post("/", h.Users.CreateUser)
	users.Put("/:id", h.Users.UpdateUser)
	users.Delete("/:id", h.Users.DeleteUser)

	// Admin
	admin := protected.Group("/admin", middleware.RequireRole(string(model.RoleAdmin)))
	admin.Post("/seed", middleware.RequirePrivilege(model.PrivDataSeed), h.Seed.Seed)

	// WebSocket; token as bearer header or ?token=
	app.Use("/ws", middleware.RequireStreamAuth(userRepo), RequireUpgrade)
	app.Get("/ws", Stream(hub))
}
