package websocket

import (
	"encoding/json"

	"github.com/gridroom/tictactoe-backend/internal/entity"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Move carries the clicked cell coordinates.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Payload is the request and response body shared by all actions.
type Payload struct {
	Session     *entity.Session     `json:"session,omitempty"`
	GridSize    int                 `json:"grid_size,omitempty"`
	Competitors []entity.Competitor `json:"competitors,omitempty"`
	Move        *Move               `json:"move,omitempty"`
	Message     string              `json:"message,omitempty"`
	Error       string              `json:"error,omitempty"`
}
