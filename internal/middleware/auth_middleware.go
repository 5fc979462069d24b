package middleware

import (
	"errors"
	"strings"

	"go-datamonitor/internal/model"
	"go-datamonitor/internal/repository"
	"go-datamonitor/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

var (
	errUserNotFound   = errors.New("user not found")
	errUserDisabled   = errors.New("account is disabled")
	errSessionExpired = errors.New("session expired (signed in elsewhere)")
)

// authenticate resolves a raw token to its active user. The token must
// carry the user's current token version.
func authenticate(userRepo repository.UserRepository, token string) (*model.User, error) {
	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, errors.New("invalid or expired token")
	}

	user, err := userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, errUserNotFound
	}
	if !user.IsActive {
		return nil, errUserDisabled
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, errSessionExpired
	}
	return user, nil
}

// role and privileges from the stored row, not the token
func setUser(c *fiber.Ctx, user *model.User) {
	c.Locals("user_id", user.ID.String())
	c.Locals("user_role", string(user.Role))
	c.Locals("user_privileges", user.Role.Privileges())
}

// RequireAuth validates the bearer token and puts the caller's identity into Locals.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		user, err := authenticate(userRepo, parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}
		setUser(c, user)
		return c.Next()
	}
}

// RequireStreamAuth guards the websocket route. Browsers cannot set headers
// on an upgrade request, so the token is also accepted as ?token=.
func RequireStreamAuth(userRepo repository.UserRepository) fiber.Handler {
	bearer := RequireAuth(userRepo)
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			return bearer(c)
		}

		user, err := authenticate(userRepo, token)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}
		setUser(c, user)
		return c.Next()
	}
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals("user_privileges").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}

		for _, p := range privileges {
			if p == requiredPrivilege {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + requiredPrivilege + "' privilege",
		})
	}
}

// RequireRole admits only users whose role is one of roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires role " + strings.Join(roles, " or "),
		})
	}
}
