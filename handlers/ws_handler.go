package handlers

import (
	"usedcom_backend/internal/ws"
	"usedcom_backend/models"
	"usedcom_backend/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// WSHandler serves the admin inquiry event feed.
type WSHandler struct {
	Hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{Hub: hub}
}

// UpgradeMiddleware authenticates the dashboard before the upgrade. Browsers
// cannot set an Authorization header on websocket requests, so the token is
// carried in the query string.
func (h *WSHandler) UpgradeMiddleware(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	claims, err := utils.ParseToken(c.Query("token"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Token is invalid", nil))
	}
	if role, _ := claims["role"].(string); role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Admin access required", nil))
	}

	if email, ok := claims["email"].(string); ok {
		c.Locals("email", email)
	}
	return c.Next()
}

// Handler returns the websocket handler function
func (h *WSHandler) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		email, _ := c.Locals("email").(string)

		client := &ws.Client{
			Hub:   h.Hub,
			Conn:  c,
			Send:  make(chan []byte, 16),
			Email: email,
		}

		client.Hub.Register <- client

		go client.WritePump()
		client.ReadPump()
	})
}
