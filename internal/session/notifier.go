package session

import "yatzy-backend/internal/game"

// Actions tag the payloads pushed to clients.
const (
	ActionGameStart    = "onGameStart"
	ActionGameUpdate   = "onGameUpdate"
	ActionGameFinished = "onGameFinished"
	ActionDiceRolled   = "sendDices"
	ActionGameList     = "onRequestGames"
)

// Notifier delivers payloads to connected players. Sends are
// best-effort and must not block the calling event.
type Notifier interface {
	SendToPlayer(identity string, payload any)
	BroadcastSessionList(views []game.View)
}

// StateMessage carries a full session view plus an action tag.
type StateMessage struct {
	Action string `json:"action"`
	game.View
}

// DiceMessage carries one roll to the other players of a session.
type DiceMessage struct {
	Action   string `json:"action"`
	GameID   int    `json:"gameId"`
	Identity string `json:"playerId"`
	Values   []int  `json:"diceValue"`
}
