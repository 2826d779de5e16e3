package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by this package.
const (
	LocalSessionID = "sessionID"
	LocalPlayerID  = "playerID"
)

// SessionID rejects routes whose :id is not a session UUID and stores the
// canonical form for handlers.
func SessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "session ID must be a UUID",
			})
		}
		c.Locals(LocalSessionID, id.String())
		return c.Next()
	}
}

// PlayerID picks up an optional player tag from the X-Player-ID header or the
// playerId query parameter. Players are labels only; a missing one is fine.
func PlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID != "" {
			c.Locals(LocalPlayerID, playerID)
		}
		return c.Next()
	}
}

func sessionIDFrom(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(LocalSessionID).(string)
	return id, ok && id != ""
}
