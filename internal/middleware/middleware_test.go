package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/s/:id", SessionID(), PlayerID(), func(c *fiber.Ctx) error {
		player, _ := c.Locals(LocalPlayerID).(string)
		return c.SendString(c.Locals(LocalSessionID).(string) + "|" + player)
	})
	app.Get("/ws/:id", SessionID(), WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestSessionID(t *testing.T) {
	app := newApp()
	tests := []struct {
		name   string
		target string
		header string
		status int
		body   string
	}{
		{"valid", "/s/6BA7B810-9DAD-11D1-80B4-00C04FD430C8", "", fiber.StatusOK, "6ba7b810-9dad-11d1-80b4-00c04fd430c8|"},
		{"player header", "/s/6ba7b810-9dad-11d1-80b4-00c04fd430c8", "alice", fiber.StatusOK, "6ba7b810-9dad-11d1-80b4-00c04fd430c8|alice"},
		{"player query", "/s/6ba7b810-9dad-11d1-80b4-00c04fd430c8?playerId=bob", "", fiber.StatusOK, "6ba7b810-9dad-11d1-80b4-00c04fd430c8|bob"},
		{"not a uuid", "/s/nope", "", fiber.StatusBadRequest, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.target, nil)
			if tc.header != "" {
				req.Header.Set("X-Player-ID", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			if tc.body != "" {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != tc.body {
					t.Errorf("body = %q, want %q", body, tc.body)
				}
			}
		})
	}
}

func TestWebSocketUpgradeRequiresUpgrade(t *testing.T) {
	app := newApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/ws/6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("status = %d, want 426", resp.StatusCode)
	}
}
