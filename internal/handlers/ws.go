package handlers

import (
	"memories-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WebSocketHandler streams created documents to the client until it disconnects.
func WebSocketHandler(hub *Hub, log zerolog.Logger) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		connID := uuid.New().String()
		topics := ParseTopics(c.Query("topics"))

		defer func() {
			hub.Unsubscribe(connID)
			c.Close()
		}()

		// Sent before Subscribe so it cannot race with a broadcast.
		if err := utils.SendJSON(c, fiber.Map{
			"event":  "connected",
			"topics": topics,
		}); err != nil {
			return
		}
		hub.Subscribe(connID, c, topics)
		log.Debug().Str("conn_id", connID).Strs("topics", topics).Msg("feed subscriber connected")

		// The feed is read-only; reading only detects the close.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Str("conn_id", connID).Msg("feed read error")
				}
				break
			}
		}
		log.Debug().Str("conn_id", connID).Msg("feed subscriber disconnected")
	})
}

// WSUpgradeMiddleware rejects plain HTTP requests to the feed.
func WSUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
