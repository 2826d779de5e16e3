package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
)

type SessionController struct {
	sessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// Register mounts the REST routes on router.
func (sc *SessionController) Register(router fiber.Router) {
	router.Post("/session", middleware.PlayerID(), sc.CreateSession)

	withID := middleware.SessionID()
	router.Get("/session/:id", withID, sc.GetSession)
	router.Get("/session/:id/moves", withID, sc.AllLegalMoves)
	router.Get("/session/:id/moves/:square", withID, sc.LegalMoves)
	router.Post("/session/:id/move", withID, sc.MakeMove)
	router.Post("/session/:id/undo", withID, sc.Undo)
	router.Get("/session/:id/perft/:depth", withID, sc.Perft)
	router.Delete("/session/:id", withID, sc.DeleteSession)
}

// statusFor maps engine and service errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrInvalidPosition), errors.Is(err, model.ErrStateMisuse):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func sessionID(c *fiber.Ctx) string {
	return c.Locals(middleware.LocalSessionID).(string)
}

func (sc *SessionController) CreateSession(c *fiber.Ctx) error {
	var req service.CreateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}
	if playerID, ok := c.Locals(middleware.LocalPlayerID).(string); ok && req.Players.White.ID == "" {
		req.Players.White = model.Player{ID: playerID}
	}

	view, err := sc.sessionService.CreateSession(req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (sc *SessionController) GetSession(c *fiber.Ctx) error {
	view, err := sc.sessionService.GetSession(sessionID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func (sc *SessionController) LegalMoves(c *fiber.Ctx) error {
	moves, err := sc.sessionService.LegalMoves(sessionID(c), c.Params("square"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(moves)
}

func (sc *SessionController) AllLegalMoves(c *fiber.Ctx) error {
	moves, err := sc.sessionService.AllLegalMoves(sessionID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(moves)
}

func (sc *SessionController) MakeMove(c *fiber.Ctx) error {
	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	view, err := sc.sessionService.HandleMove(sessionID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func (sc *SessionController) Undo(c *fiber.Ctx) error {
	view, undone, err := sc.sessionService.HandleUndo(sessionID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"undone":  undone,
		"session": view,
	})
}

func (sc *SessionController) Perft(c *fiber.Ctx) error {
	depth, err := strconv.Atoi(c.Params("depth"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "depth must be a number",
		})
	}
	result, err := sc.sessionService.Perft(sessionID(c), depth)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

func (sc *SessionController) DeleteSession(c *fiber.Ctx) error {
	if err := sc.sessionService.DeleteSession(sessionID(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
