package handler

import (
	"go-datamonitor/internal/repository"
	"go-datamonitor/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns overview statistics
// Query params: unit_id (optional)
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	unitID, err := optionalUint(c, "unit_id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	stats, err := h.service.GetStats(unitID)
	if err != nil {
		return fail(c, err, "Failed to fetch dashboard stats")
	}

	return c.JSON(stats)
}

// GetTrend returns daily averages for charts
// Query params: unit_id, parameter, days (default 30)
func (h *DashboardHandler) GetTrend(c *fiber.Ctx) error {
	unitID, err := optionalUint(c, "unit_id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	days := c.QueryInt("days", service.DefaultTrendDays)

	data, err := h.service.GetTrend(unitID, c.Query("parameter"), days)
	if err != nil {
		return fail(c, err, "Failed to fetch trend")
	}
	if data == nil {
		data = []repository.TrendPoint{}
	}

	return c.JSON(fiber.Map{
		"period":    days,
		"parameter": c.Query("parameter"),
		"data":      data,
	})
}

func (h *DashboardHandler) GetParameterAverages(c *fiber.Ctx) error {
	unitID, err := optionalUint(c, "unit_id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := h.service.GetParameterAverages(unitID)
	if err != nil {
		return fail(c, err, "Failed to fetch parameter averages")
	}
	if data == nil {
		data = []repository.ParameterAverage{}
	}
	return c.JSON(data)
}

func (h *DashboardHandler) GetUnitCounts(c *fiber.Ctx) error {
	data, err := h.service.GetUnitCounts()
	if err != nil {
		return fail(c, err, "Failed to fetch unit counts")
	}
	if data == nil {
		data = []repository.UnitCount{}
	}
	return c.JSON(data)
}
