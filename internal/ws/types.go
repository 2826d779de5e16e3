package ws

import (
	"encoding/json"
)

// MessageType names the kinds of websocket messages a session exchanges.
type MessageType string

const (
	// Client to server.
	MessageTypeMove MessageType = "move"
	MessageTypeUndo MessageType = "undo"

	// Server to client.
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// Message is the envelope for every websocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorPayload is the body of a MessageTypeError frame.
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewError builds an error frame.
func NewError(msg string) Message {
	payload, _ := json.Marshal(ErrorPayload{Error: msg})
	return Message{Type: MessageTypeError, Payload: payload}
}
