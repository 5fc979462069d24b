package handler

import (
	"go-datamonitor/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser handles user creation
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.userService.CreateUser(&req)
	if err != nil {
		return fail(c, err, "Failed to create user")
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"data":    user.ToResponse(),
	})
}

// GetUsers returns all users
// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(users)
}

// GetUser returns a single user by ID
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		return fail(c, err, "Failed to fetch user")
	}

	return c.JSON(user)
}

// UpdateUser handles user update
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.userService.UpdateUser(userID, &req)
	if err != nil {
		return fail(c, err, "Failed to update user")
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"data":    user.ToResponse(),
	})
}

// DeleteUser handles user deletion
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	if self, ok := currentUserID(c); ok && self == userID {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot delete your own account"})
	}

	deleted, err := h.userService.DeleteUser(userID)
	if err != nil {
		return fail(c, err, "Failed to delete user")
	}
	if !deleted {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
