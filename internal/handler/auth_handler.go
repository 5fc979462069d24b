package handler

import (
	"go-datamonitor/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		return fail(c, err, "Login failed")
	}

	return c.JSON(response)
}

// Me returns the signed-in user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, ok := currentUserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	user, err := h.authService.Me(id)
	if err != nil {
		return fail(c, err, "Failed to fetch user")
	}
	return c.JSON(user)
}

// ChangePassword handles password change for the signed-in user
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	id, ok := currentUserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.authService.ChangePassword(id, &req); err != nil {
		return fail(c, err, "Failed to change password")
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
