package handler

import (
	"go-datamonitor/internal/model"
	"go-datamonitor/internal/repository"
	"go-datamonitor/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MeasurementHandler struct {
	service service.MeasurementService
	units   service.UnitService
}

func NewMeasurementHandler(s service.MeasurementService, units service.UnitService) *MeasurementHandler {
	return &MeasurementHandler{service: s, units: units}
}

// filterFromQuery reads unit_id, from, to and parameter.
func filterFromQuery(c *fiber.Ctx) (repository.MeasurementFilter, error) {
	var f repository.MeasurementFilter
	var err error
	if f.UnitID, err = optionalUint(c, "unit_id"); err != nil {
		return f, err
	}
	if f.From, err = optionalTime(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = optionalTime(c, "to"); err != nil {
		return f, err
	}
	f.Parameter = c.Query("parameter")
	return f, nil
}

// GetMeasurements lists measurements newest first.
// GET /api/v1/measurements?unit_id=&from=&to=&parameter=
func (h *MeasurementHandler) GetMeasurements(c *fiber.Ctx) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	ms, err := h.service.List(filter)
	if err != nil {
		return fail(c, err, "Failed to fetch measurements")
	}
	return c.JSON(model.MeasurementResponses(ms))
}

// GET /api/v1/measurements/recent?count=&unit_id=
func (h *MeasurementHandler) GetRecent(c *fiber.Ctx) error {
	unitID, err := optionalUint(c, "unit_id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	ms, err := h.service.Recent(c.QueryInt("count", service.DefaultRecentCount), unitID)
	if err != nil {
		return fail(c, err, "Failed to fetch measurements")
	}
	return c.JSON(model.MeasurementResponses(ms))
}

// GET /api/v1/measurements/parameters?unit_id=
func (h *MeasurementHandler) GetParameters(c *fiber.Ctx) error {
	unitID, err := optionalUint(c, "unit_id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	names, err := h.service.ParameterNames(unitID)
	if err != nil {
		return fail(c, err, "Failed to fetch parameters")
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(names)
}

// GET /api/v1/measurements/:id
func (h *MeasurementHandler) GetMeasurement(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid measurement ID"})
	}

	m, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err, "Failed to fetch measurement")
	}
	return c.JSON(m.ToResponse())
}

// CreateMeasurement records a reading for the signed-in user.
// POST /api/v1/measurements
func (h *MeasurementHandler) CreateMeasurement(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.CreateMeasurementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.UnitID != 0 {
		exists, err := h.units.Exists(req.UnitID)
		if err != nil {
			return fail(c, err, "Failed to create measurement")
		}
		if !exists {
			return c.Status(400).JSON(fiber.Map{"error": service.ErrUnitNotFound.Error()})
		}
	}

	m, err := h.service.Create(&req, userID)
	if err != nil {
		return fail(c, err, "Failed to create measurement")
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Measurement recorded",
		"data":    m.ToResponse(),
	})
}

// PUT /api/v1/measurements/:id
func (h *MeasurementHandler) UpdateMeasurement(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid measurement ID"})
	}

	var req service.UpdateMeasurementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	m, err := h.service.Update(id, &req, actorID(c))
	if err != nil {
		return fail(c, err, "Failed to update measurement")
	}

	return c.JSON(fiber.Map{
		"message": "Measurement updated",
		"data":    m.ToResponse(),
	})
}

// DELETE /api/v1/measurements/:id
func (h *MeasurementHandler) DeleteMeasurement(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid measurement ID"})
	}

	deleted, err := h.service.Delete(id, actorID(c))
	if err != nil {
		return fail(c, err, "Failed to delete measurement")
	}
	if !deleted {
		return c.Status(404).JSON(fiber.Map{"error": service.ErrMeasurementNotFound.Error()})
	}

	return c.JSON(fiber.Map{"message": "Measurement deleted"})
}

// Validate checks a reading without storing it.
// POST /api/v1/measurements/validate
func (h *MeasurementHandler) Validate(c *fiber.Ctx) error {
	var req service.UpdateMeasurementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.Validate(&req)
	if err != nil {
		return fail(c, err, "Failed to validate measurement")
	}
	return c.JSON(fiber.Map{
		"is_valid":           result.IsValid,
		"validation_message": result.Message,
	})
}
