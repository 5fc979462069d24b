package handler

import (
	"go-datamonitor/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db      *gorm.DB
	hub     *ws.Hub
	appName string
}

func NewHealthHandler(db *gorm.DB, hub *ws.Hub, appName string) *HealthHandler {
	return &HealthHandler{db: db, hub: hub, appName: appName}
}

// Health reports whether the database answers.
// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status, code := "ok", 200
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		status, code = "degraded", 503
	}

	clients := 0
	if h.hub != nil {
		clients = h.hub.ClientCount()
	}
	return c.Status(code).JSON(fiber.Map{
		"status":     status,
		"app":        h.appName,
		"ws_clients": clients,
	})
}

// RequireUpgrade rejects plain HTTP requests to the websocket route.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}

// Stream registers the connection with the hub until the client goes away.
func Stream(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			// clients only listen; reads detect disconnects
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
