package game

// View is the serializable projection of a Session pushed to clients.
// Field names keep the wire format the original frontend speaks.
type View struct {
	ID        int    `json:"gameId"`
	Kind      string `json:"gameType"`
	Capacity  int    `json:"nrPlayers"`
	Connected int    `json:"connected"`
	Slots     []Slot `json:"players"`
	Started   bool   `json:"gameStarted"`
	Finished  bool   `json:"gameFinished"`
	Turn      int    `json:"playerToMove"`
	LastRoll  []int  `json:"diceValues"`
}

// View snapshots the session. The caller holds the session lock.
func (s *Session) View() View {
	slots := make([]Slot, len(s.Slots))
	copy(slots, s.Slots)
	roll := make([]int, len(s.LastRoll))
	copy(roll, s.LastRoll)
	return View{
		ID:        s.ID,
		Kind:      s.Kind,
		Capacity:  s.Capacity,
		Connected: s.Connected,
		Slots:     slots,
		Started:   s.Started,
		Finished:  s.Finished,
		Turn:      s.Turn,
		LastRoll:  roll,
	}
}

// FromView rebuilds a session from its projection. Every field of the
// view is carried over, so View followed by FromView is lossless.
func FromView(v View) *Session {
	s := &Session{
		ID:        v.ID,
		Kind:      v.Kind,
		Capacity:  v.Capacity,
		Connected: v.Connected,
		Slots:     make([]Slot, v.Capacity),
		Started:   v.Started,
		Finished:  v.Finished,
		Turn:      v.Turn,
		LastRoll:  append([]int(nil), v.LastRoll...),
	}
	copy(s.Slots, v.Slots)
	return s
}
