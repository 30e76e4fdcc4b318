package ws

import (
	"encoding/json"

	"yatzy-backend/internal/game"
)

// Orchestrator is the slice of the session layer the hub routes
// client actions into.
type Orchestrator interface {
	JoinOrCreate(kind string, capacity int, identity, name string) (game.View, error)
	JoinByID(id int, identity, name string) (game.View, error)
	Roll(id int, identity string, values []int) error
	Selection(id int, identity string, payload json.RawMessage) error
	RelayChat(id int, identity string, payload json.RawMessage) error
	Disconnect(identity string)
	Abort(identity string)
	SessionList() []game.View
}
