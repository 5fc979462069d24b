package handler

import (
	"errors"

	"go-datamonitor/internal/seed"

	"github.com/gofiber/fiber/v2"
)

// Seeder is implemented by *seed.Generator.
type Seeder interface {
	Generate() (int, error)
}

type SeedHandler struct {
	seeder Seeder
}

func NewSeedHandler(s Seeder) *SeedHandler {
	return &SeedHandler{seeder: s}
}

// Seed fills an empty store with mock measurements.
// POST /api/v1/admin/seed
func (h *SeedHandler) Seed(c *fiber.Ctx) error {
	n, err := h.seeder.Generate()
	if err != nil {
		if errors.Is(err, seed.ErrNoAdmin) || errors.Is(err, seed.ErrNoUnits) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return fail(c, err, "Failed to seed data")
	}
	if n == 0 {
		return c.JSON(fiber.Map{"message": "Data already exists, nothing seeded", "count": 0})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Mock data seeded", "count": n})
}
