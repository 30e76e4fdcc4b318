package session

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"yatzy-backend/internal/game"
)

// Orchestrator turns external events into session mutations and
// decides what the notifier pushes out. It is the only component that
// sequences multiple mutations per event; it holds the session lock
// for the duration of one event and never calls the registry while a
// session is locked.
type Orchestrator struct {
	reg       *Registry
	notifier  Notifier
	diceCount int
	log       zerolog.Logger
}

func NewOrchestrator(reg *Registry, diceCount int) *Orchestrator {
	return &Orchestrator{
		reg:       reg,
		diceCount: diceCount,
		log:       log.With().Str("component", "session").Logger(),
	}
}

// SetNotifier wires the transport after construction; the hub needs
// the orchestrator first.
func (o *Orchestrator) SetNotifier(n Notifier) {
	o.notifier = n
}

// JoinOrCreate seats the player in the first open session matching
// kind and capacity, creating one if none exists. The player is first
// evicted from any session it still occupies: one active seat per
// identity across the whole server.
func (o *Orchestrator) JoinOrCreate(kind string, capacity int, identity, name string) (game.View, error) {
	o.evict(identity, game.LeaveAbort)

	s := o.reg.FindJoinable(kind, capacity)
	if s == nil {
		var err error
		if s, err = o.reg.Create(kind, capacity); err != nil {
			return game.View{}, err
		}
		o.log.Info().Int("game", s.ID).Str("kind", kind).Int("capacity", capacity).Msg("session created")
	}

	s.Lock()
	if _, err := s.Occupy(identity, name); err != nil {
		// Lost a race for the last seat; fall back to a fresh session.
		s.Unlock()
		var cerr error
		if s, cerr = o.reg.Create(kind, capacity); cerr != nil {
			return game.View{}, cerr
		}
		s.Lock()
		if _, cerr = s.Occupy(identity, name); cerr != nil {
			s.Unlock()
			return game.View{}, cerr
		}
	}
	o.maybeStart(s)
	v := s.View()
	s.Unlock()

	o.notifyState(v)
	o.broadcastList()
	return v, nil
}

// JoinByID seats the player in a specific session.
func (o *Orchestrator) JoinByID(id int, identity, name string) (game.View, error) {
	s, ok := o.reg.Get(id)
	if !ok {
		return game.View{}, ErrSessionNotFound
	}

	s.Lock()
	if s.Started || s.Finished {
		s.Unlock()
		o.broadcastList()
		return game.View{}, ErrJoinRejected
	}
	if _, err := s.Occupy(identity, name); err != nil {
		s.Unlock()
		o.broadcastList()
		return game.View{}, err
	}
	o.maybeStart(s)
	v := s.View()
	s.Unlock()

	o.notifyState(v)
	o.broadcastList()
	return v, nil
}

// maybeStart flips Started once the session has a full complement of
// active players. Solo sessions start on the first join. Started
// never reverts. Caller holds the session lock.
func (o *Orchestrator) maybeStart(s *game.Session) {
	if s.Started {
		return
	}
	if s.Capacity == 1 || (s.IsFull() && s.ActiveCount() == s.Capacity) {
		s.Started = true
		o.log.Info().Int("game", s.ID).Msg("session started")
	}
}

// Roll records a dice roll for the player whose turn it is. With no
// values given the server rolls its own dice and the result goes to
// every active player; client-rolled values go to everyone else.
func (o *Orchestrator) Roll(id int, identity string, values []int) error {
	s, ok := o.reg.Get(id)
	if !ok {
		return ErrSessionNotFound
	}

	s.Lock()
	idx := s.FindPlayer(identity)
	if idx == -1 {
		s.Unlock()
		return game.ErrPlayerNotFound
	}
	if idx != s.Turn {
		s.Unlock()
		o.log.Debug().Int("game", id).Str("player", identity).Msg("roll out of turn")
		return ErrNotYourTurn
	}
	serverRolled := len(values) == 0
	if serverRolled {
		values = game.NewDice(o.diceCount).Roll()
	}
	s.RecordRoll(values)
	v := s.View()
	s.Unlock()

	msg := DiceMessage{Action: ActionDiceRolled, GameID: id, Identity: identity, Values: values}
	for _, sl := range v.Slots {
		if !sl.Active {
			continue
		}
		if sl.ID == identity && !serverRolled {
			continue
		}
		o.send(sl.ID, msg)
	}
	return nil
}

// Selection records that the current player chose a scoring cell and
// advances the turn. The raw selection payload is echoed to the other
// players first so clients can render the chosen cell; the session
// itself only cares that a selection happened.
func (o *Orchestrator) Selection(id int, identity string, payload json.RawMessage) error {
	s, ok := o.reg.Get(id)
	if !ok {
		return ErrSessionNotFound
	}

	s.Lock()
	idx := s.FindPlayer(identity)
	if idx == -1 {
		s.Unlock()
		return game.ErrPlayerNotFound
	}
	if idx != s.Turn {
		s.Unlock()
		o.log.Debug().Int("game", id).Str("player", identity).Msg("selection out of turn")
		return ErrNotYourTurn
	}
	s.Advance()
	v := s.View()
	s.Unlock()

	if len(payload) > 0 {
		for _, sl := range v.Slots {
			if sl.Active && sl.ID != identity {
				o.send(sl.ID, payload)
			}
		}
	}

	if v.Finished {
		o.finish(v)
		return nil
	}
	o.notifyState(v)
	return nil
}

// RelayChat forwards a chat payload to the other active players of a
// session.
func (o *Orchestrator) RelayChat(id int, identity string, payload json.RawMessage) error {
	s, ok := o.reg.Get(id)
	if !ok {
		return ErrSessionNotFound
	}
	s.Lock()
	v := s.View()
	s.Unlock()

	for _, sl := range v.Slots {
		if sl.Active && sl.ID != identity {
			o.send(sl.ID, payload)
		}
	}
	return nil
}

// Disconnect removes the identity from every session it occupies.
func (o *Orchestrator) Disconnect(identity string) {
	o.evict(identity, game.LeaveDisconnect)
	o.broadcastList()
}

// Abort is a player-initiated leave with disconnect semantics.
func (o *Orchestrator) Abort(identity string) {
	o.evict(identity, game.LeaveAbort)
	o.broadcastList()
}

// SessionList snapshots every stored session.
func (o *Orchestrator) SessionList() []game.View {
	return o.reg.Views()
}

// evict marks the identity as having left every session where it
// holds an active seat. A session left with no active players is
// reaped; a session that finishes gets exactly one terminal
// notification; otherwise the remaining players get a state update.
// The caller broadcasts the session list afterwards.
func (o *Orchestrator) evict(identity string, reason game.LeaveReason) {
	for _, s := range o.reg.All() {
		s.Lock()
		if s.FindPlayer(identity) == -1 {
			s.Unlock()
			continue
		}
		_ = s.MarkLeft(identity, reason)
		v := s.View()
		active := s.ActiveCount()
		s.Unlock()

		o.log.Info().Int("game", v.ID).Str("player", identity).
			Str("reason", string(reason)).Msg("player left session")

		switch {
		case active == 0:
			o.reg.Remove(v.ID)
		case v.Finished:
			o.finish(v)
		default:
			o.notifyState(v)
		}
	}
}

// finish emits the terminal notification to the remaining active
// players and reaps the session. The generic update for the same
// transition is suppressed; one terminal message per session.
func (o *Orchestrator) finish(v game.View) {
	o.log.Info().Int("game", v.ID).Msg("session finished")
	for _, sl := range v.Slots {
		if sl.Active {
			o.send(sl.ID, StateMessage{Action: ActionGameFinished, View: v})
		}
	}
	o.reg.Remove(v.ID)
	o.broadcastList()
}

// notifyState pushes the view to every active player. Once a session
// has started the tag stays onGameStart so late deliveries cannot be
// mistaken for lobby updates.
func (o *Orchestrator) notifyState(v game.View) {
	action := ActionGameUpdate
	if v.Started {
		action = ActionGameStart
	}
	msg := StateMessage{Action: action, View: v}
	for _, sl := range v.Slots {
		if sl.Active {
			o.send(sl.ID, msg)
		}
	}
}

func (o *Orchestrator) send(identity string, payload any) {
	if o.notifier == nil {
		return
	}
	o.notifier.SendToPlayer(identity, payload)
}

func (o *Orchestrator) broadcastList() {
	if o.notifier == nil {
		return
	}
	o.notifier.BroadcastSessionList(o.reg.Views())
}
