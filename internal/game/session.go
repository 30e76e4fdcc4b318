package game

import "sync"

// Slot is one seat in a session. An empty seat has ID == "" and
// Active == false. A seat whose occupant left keeps its last known
// name so clients can still render it, but Aborted is set and the
// seat no longer counts as connected.
type Slot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Aborted bool   `json:"aborted"`
}

// LeaveReason distinguishes a transport-level disconnect from a
// player-initiated abort. Both mutate the session identically; the
// reason only matters for logging.
type LeaveReason string

const (
	LeaveDisconnect LeaveReason = "disconnect"
	LeaveAbort      LeaveReason = "abort"
)

// Session is one game instance with a fixed player capacity and a
// circular turn order. Methods do not lock; the caller holds the
// embedded mutex for the duration of one event so that multiple
// mutations apply atomically.
type Session struct {
	sync.Mutex

	ID        int
	Kind      string
	Capacity  int
	Slots     []Slot
	Connected int
	Started   bool
	Finished  bool
	Turn      int
	LastRoll  []int
}

// New creates a session with all seats empty.
func New(id int, kind string, capacity int) (*Session, error) {
	if capacity < 1 {
		return nil, ErrInvalidConfig
	}
	return &Session{
		ID:       id,
		Kind:     kind,
		Capacity: capacity,
		Slots:    make([]Slot, capacity),
	}, nil
}

// Occupy seats the player in the first free slot and returns its
// index. A slot vacated before the game started can be re-filled; the
// previous occupant's aborted flag is cleared by the overwrite.
func (s *Session) Occupy(identity, name string) (int, error) {
	return s.OccupyAt(-1, identity, name)
}

// OccupyAt seats the player at the preferred index, or at the first
// free slot when preferred is negative.
func (s *Session) OccupyAt(preferred int, identity, name string) (int, error) {
	idx := preferred
	if idx < 0 {
		idx = s.freeSlot()
	} else if idx >= s.Capacity || s.Slots[idx].Active {
		idx = -1
	}
	if idx == -1 {
		return 0, ErrSessionFull
	}
	s.Slots[idx] = Slot{ID: identity, Name: name, Active: true}
	s.Connected++
	return idx, nil
}

func (s *Session) freeSlot() int {
	for i, sl := range s.Slots {
		if !sl.Active {
			return i
		}
	}
	return -1
}

// IsFull reports whether every seat is taken.
func (s *Session) IsFull() bool {
	return s.Connected >= s.Capacity
}

// FindPlayer returns the slot index occupied by identity, or -1.
// Aborted seats do not match, so a departed identity cannot be
// located twice.
func (s *Session) FindPlayer(identity string) int {
	for i, sl := range s.Slots {
		if sl.Active && sl.ID == identity {
			return i
		}
	}
	return -1
}

// MarkLeft records that the player holding identity has left. The
// seat keeps its name for views but stops counting as connected. If
// it was that player's turn the pointer advances; if too few active
// players remain the session finishes. Calling it again for a seat
// that already left is a no-op, since the disconnect and abort paths
// may race.
func (s *Session) MarkLeft(identity string, reason LeaveReason) error {
	idx := -1
	for i, sl := range s.Slots {
		if sl.ID == identity {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrPlayerNotFound
	}
	// Finished is terminal; a finished session is about to be reaped
	// and its seats no longer change.
	if s.Finished || !s.Slots[idx].Active {
		return nil
	}

	s.Slots[idx].Active = false
	s.Slots[idx].Aborted = true
	s.Connected--

	if s.Started && !s.Finished && s.Turn == idx {
		s.Advance()
	}

	active := s.ActiveCount()
	if s.Started {
		if active <= 1 {
			s.Finished = true
		}
	} else if active == 0 {
		s.Finished = true
	}
	return nil
}

// ActiveCount returns the number of seats held by connected,
// non-aborted players.
func (s *Session) ActiveCount() int {
	n := 0
	for _, sl := range s.Slots {
		if sl.Active {
			n++
		}
	}
	return n
}

// Advance moves the turn pointer to the next eligible seat, scanning
// forward circularly from the seat after the current one. If the scan
// comes back around without finding an eligible seat the pointer is
// left alone and the session finishes.
func (s *Session) Advance() {
	next := (s.Turn + 1) % s.Capacity
	for next != s.Turn {
		if s.Slots[next].Active && !s.Slots[next].Aborted {
			s.Turn = next
			return
		}
		next = (next + 1) % s.Capacity
	}
	s.Finished = true
}

// RecordRoll overwrites the last dice roll. Values are stored as
// reported; face validation belongs to the ruleset, not the session.
func (s *Session) RecordRoll(values []int) {
	s.LastRoll = append(s.LastRoll[:0], values...)
}
