package handler

import (
	"errors"
	"log"
	"strconv"
	"time"

	"go-datamonitor/internal/archive"
	"go-datamonitor/internal/model"
	"go-datamonitor/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var statusByError = []struct {
	err    error
	status int
}{
	{service.ErrInvalidInput, 400},
	{service.ErrInvalidRole, 400},
	{service.ErrWrongPassword, 400},
	{service.ErrInvalidCredentials, 401},
	{service.ErrUserInactive, 401},
	{service.ErrTwoFactorRequired, 401},
	{service.ErrUnitNotFound, 404},
	{service.ErrUserNotFound, 404},
	{service.ErrMeasurementNotFound, 404},
	{service.ErrUnitCodeExists, 409},
	{service.ErrEmailExists, 409},
	{archive.ErrExists, 409},
	{service.ErrLockedOut, 423},
}

// fail maps service errors to a status and writes {"error": ...}. Unknown
// errors are logged and hidden behind fallback.
func fail(c *fiber.Ctx, err error, fallback string) error {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(fiber.Map{"error": err.Error()})
		}
	}
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(500).JSON(fiber.Map{"error": fallback})
}

func actorID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok && id != "" {
		return id
	}
	return model.SystemActor
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(id)
	return parsed, err == nil
}

func uintParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// optionalUint reads a positive integer query value. Missing means nil.
func optionalUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, errors.New("invalid " + key)
	}
	v := uint(n)
	return &v, nil
}

// optionalTime accepts RFC3339 or a plain date (midnight UTC).
func optionalTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errors.New("invalid " + key + ": use RFC3339 or YYYY-MM-DD")
}
