package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
)

// conn serializes writes; broadcasts from other requests share the socket
// with this handler's error frames.
type conn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (c *conn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

type WebSocketController struct {
	sessionService *service.SessionService
}

func NewWebSocketController(sessionService *service.SessionService) *WebSocketController {
	return &WebSocketController{
		sessionService: sessionService,
	}
}

// Register mounts the session stream on router.
func (wsc *WebSocketController) Register(router fiber.Router, origins []string) {
	router.Get("/ws/session/:id",
		middleware.SessionID(),
		middleware.WebSocketUpgrade(),
		websocket.New(wsc.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         origins,
		}))
}

// HandleConnection subscribes the connection to its session and serves
// move and undo messages until it closes.
func (wsc *WebSocketController) HandleConnection(raw *websocket.Conn) {
	sessionID, _ := raw.Locals(middleware.LocalSessionID).(string)
	c := &conn{Conn: raw}

	if err := wsc.sessionService.RegisterConnection(sessionID, c); err != nil {
		log.Printf("register connection: %v", err)
		c.WriteJSON(ws.NewError(err.Error()))
		c.Close()
		return
	}
	defer wsc.sessionService.UnregisterConnection(sessionID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: read error: %v", sessionID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(c, "malformed message")
			continue
		}
		if err := wsc.handleMessage(sessionID, msg); err != nil {
			wsc.sendError(c, err.Error())
		}
	}
}

// handleMessage applies the request; the resulting view reaches this
// connection through the session broadcast.
func (wsc *WebSocketController) handleMessage(sessionID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var req service.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		_, err := wsc.sessionService.HandleMove(sessionID, req)
		return err

	case ws.MessageTypeUndo:
		_, undone, err := wsc.sessionService.HandleUndo(sessionID)
		if err == nil && !undone {
			return fmt.Errorf("nothing to undo")
		}
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *conn, errorMsg string) {
	if err := c.WriteJSON(ws.NewError(errorMsg)); err != nil {
		log.Printf("send error frame: %v", err)
	}
}
