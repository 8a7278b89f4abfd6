package websocket

import (
	"encoding/json"
	"errors"
)

const (
	ActionGameState = "game:state"
	ActionGameRound = "game:round"
	ActionGameReset = "game:reset"
	ActionError     = "error"
)

var errInvalidPayload = errors.New("invalid payload")

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RoundPayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type ErrorPayload struct {
	Action string `json:"action,omitempty"`
	Error  string `json:"error"`
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
