package handler

import (
	"go-datamonitor/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UnitHandler struct {
	service service.UnitService
}

func NewUnitHandler(s service.UnitService) *UnitHandler {
	return &UnitHandler{service: s}
}

// GetUnits lists units. ?active=true returns active units only.
// GET /api/v1/units
func (h *UnitHandler) GetUnits(c *fiber.Ctx) error {
	get := h.service.GetAll
	if c.QueryBool("active") {
		get = h.service.GetActive
	}
	units, err := get()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch units"})
	}
	return c.JSON(units)
}

// GET /api/v1/units/:id
func (h *UnitHandler) GetUnit(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid unit ID"})
	}
	unit, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err, "Failed to fetch unit")
	}
	return c.JSON(unit)
}

// GET /api/v1/units/code/:code
func (h *UnitHandler) GetUnitByCode(c *fiber.Ctx) error {
	unit, err := h.service.GetByCode(c.Params("code"))
	if err != nil {
		return fail(c, err, "Failed to fetch unit")
	}
	return c.JSON(unit)
}

// POST /api/v1/units
func (h *UnitHandler) CreateUnit(c *fiber.Ctx) error {
	var req service.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	unit, err := h.service.Create(&req, actorID(c))
	if err != nil {
		return fail(c, err, "Failed to create unit")
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Unit created successfully",
		"data":    unit,
	})
}

// PUT /api/v1/units/:id
func (h *UnitHandler) UpdateUnit(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid unit ID"})
	}

	var req service.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	unit, err := h.service.Update(id, &req, actorID(c))
	if err != nil {
		return fail(c, err, "Failed to update unit")
	}

	return c.JSON(fiber.Map{
		"message": "Unit updated successfully",
		"data":    unit,
	})
}

// DeleteUnit removes the unit, or deactivates it while data still refers to it.
// DELETE /api/v1/units/:id
func (h *UnitHandler) DeleteUnit(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid unit ID"})
	}

	found, err := h.service.Delete(id, actorID(c))
	if err != nil {
		return fail(c, err, "Failed to delete unit")
	}
	if !found {
		return c.Status(404).JSON(fiber.Map{"error": service.ErrUnitNotFound.Error()})
	}

	return c.JSON(fiber.Map{"message": "Unit deleted successfully"})
}
