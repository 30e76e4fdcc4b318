package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"yatzy-backend/internal/game"
)

// Hub owns the websocket connections. Each connection is one player
// identity, assigned at upgrade and announced in a welcome message;
// the identity dies with the connection.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*client
	orch     Orchestrator
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewHub(orch Orchestrator, allowedOrigin string) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		orch:    orch,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return allowedOrigin == "*" || r.Header.Get("Origin") == allowedOrigin
			},
		},
		log: log.With().Str("component", "ws").Logger(),
	}
}

// clientMsg is the inbound {action, ...} envelope. Unknown fields are
// ignored; selection and chat payloads are forwarded raw.
type clientMsg struct {
	Action    string `json:"action"`
	GameType  string `json:"gameType"`
	NrPlayers int    `json:"nrPlayers"`
	UserName  string `json:"userName"`
	GameID    int    `json:"gameId"`
	DiceValue []int  `json:"diceValue"`
}

type listMessage struct {
	Action string      `json:"action"`
	Games  []game.View `json:"Games"`
}

type errorMessage struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	identity := uuid.NewString()
	cl := &client{conn: conn}
	h.mu.Lock()
	h.clients[identity] = cl
	h.mu.Unlock()
	h.log.Info().Str("player", identity).Msg("client connected")

	h.SendToPlayer(identity, gin.H{"action": "welcome", "id": identity})

	defer func() {
		h.mu.Lock()
		delete(h.clients, identity)
		h.mu.Unlock()
		_ = conn.Close()
		h.orch.Disconnect(identity)
		h.log.Info().Str("player", identity).Msg("client disconnected")
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.route(identity, raw)
	}
}

func (h *Hub) route(identity string, raw []byte) {
	var msg clientMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.log.Debug().Str("player", identity).Err(err).Msg("bad message")
		return
	}

	var err error
	switch msg.Action {
	case "requestGame":
		_, err = h.orch.JoinOrCreate(msg.GameType, msg.NrPlayers, identity, msg.UserName)
	case "requestJoinGame":
		_, err = h.orch.JoinByID(msg.GameID, identity, msg.UserName)
	case "requestGameList":
		h.SendToPlayer(identity, listMessage{Action: "onRequestGames", Games: h.orch.SessionList()})
	case "sendDices":
		err = h.orch.Roll(msg.GameID, identity, msg.DiceValue)
	case "sendSelection":
		err = h.orch.Selection(msg.GameID, identity, raw)
	case "chatMessage":
		err = h.orch.RelayChat(msg.GameID, identity, raw)
	case "abortGame":
		h.orch.Abort(identity)
	default:
		h.log.Debug().Str("action", msg.Action).Msg("unknown action")
	}
	if err != nil {
		h.SendToPlayer(identity, errorMessage{Action: "onError", Message: err.Error()})
	}
}

// SendToPlayer pushes one payload to one connection, best effort. A
// failed write closes the connection; the read loop handles the rest
// of the teardown.
func (h *Hub) SendToPlayer(identity string, payload any) {
	h.mu.RLock()
	cl, ok := h.clients[identity]
	h.mu.RUnlock()
	if !ok {
		return
	}
	cl.mu.Lock()
	err := cl.conn.WriteJSON(payload)
	cl.mu.Unlock()
	if err != nil {
		h.log.Warn().Str("player", identity).Err(err).Msg("send failed")
		_ = cl.conn.Close()
	}
}

// BroadcastSessionList pushes the joinable-session list to every
// connected client.
func (h *Hub) BroadcastSessionList(views []game.View) {
	h.mu.RLock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	msg := listMessage{Action: "onRequestGames", Games: views}
	for _, id := range ids {
		h.SendToPlayer(id, msg)
	}
}
