package game

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewRejectsZeroCapacity(t *testing.T) {
	if _, err := New(1, "Ordinary", 0); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestOccupyFillsSlotsInOrder(t *testing.T) {
	s, err := New(1, "Ordinary", 3)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	for i, id := range []string{"a", "b", "c"} {
		idx, err := s.Occupy(id, "player-"+id)
		if err != nil {
			t.Fatalf("occupy %q: %v", id, err)
		}
		if idx != i {
			t.Fatalf("expected slot %d for %q, got %d", i, id, idx)
		}
	}
	if !s.IsFull() {
		t.Fatal("expected session to be full")
	}
	if _, err := s.Occupy("d", "player-d"); !errors.Is(err, ErrSessionFull) {
		t.Fatalf("expected ErrSessionFull, got %v", err)
	}
}

func TestOccupyAtPrefersRequestedSlot(t *testing.T) {
	s, _ := New(1, "Ordinary", 3)
	if _, err := s.OccupyAt(2, "a", "A"); err != nil {
		t.Fatalf("occupy at 2: %v", err)
	}
	if !s.Slots[2].Active || s.Slots[2].ID != "a" {
		t.Fatalf("slot 2 not occupied: %+v", s.Slots[2])
	}
	if _, err := s.OccupyAt(2, "b", "B"); !errors.Is(err, ErrSessionFull) {
		t.Fatalf("expected ErrSessionFull for taken slot, got %v", err)
	}
}

func TestConnectedTracksActiveSlots(t *testing.T) {
	s, _ := New(1, "Ordinary", 4)
	s.Occupy("a", "A")
	s.Occupy("b", "B")
	s.Occupy("c", "C")
	s.MarkLeft("b", LeaveDisconnect)
	s.Occupy("d", "D")
	s.MarkLeft("a", LeaveAbort)

	if s.Connected != s.ActiveCount() {
		t.Fatalf("connected %d diverged from active count %d", s.Connected, s.ActiveCount())
	}
	for i, sl := range s.Slots {
		if sl.Aborted && sl.Active {
			t.Fatalf("slot %d is both aborted and active", i)
		}
	}
}

func TestMarkLeftIsIdempotent(t *testing.T) {
	s, _ := New(1, "Ordinary", 2)
	s.Occupy("a", "A")
	s.Occupy("b", "B")

	if err := s.MarkLeft("a", LeaveDisconnect); err != nil {
		t.Fatalf("first mark left: %v", err)
	}
	if err := s.MarkLeft("a", LeaveAbort); err != nil {
		t.Fatalf("second mark left should be a no-op, got %v", err)
	}
	if s.Connected != 1 {
		t.Fatalf("expected connected 1 after double leave, got %d", s.Connected)
	}
}

func TestMarkLeftUnknownIdentity(t *testing.T) {
	s, _ := New(1, "Ordinary", 2)
	s.Occupy("a", "A")
	if err := s.MarkLeft("ghost", LeaveDisconnect); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestMarkLeftKeepsNameForViews(t *testing.T) {
	s, _ := New(1, "Ordinary", 2)
	s.Occupy("a", "Alice")
	s.Occupy("b", "Bob")
	s.MarkLeft("b", LeaveAbort)

	if s.Slots[1].Name != "Bob" {
		t.Fatalf("expected departed slot to keep its name, got %q", s.Slots[1].Name)
	}
	if !s.Slots[1].Aborted || s.Slots[1].Active {
		t.Fatalf("departed slot in wrong state: %+v", s.Slots[1])
	}
}

func TestVacatedSlotIsRefillableBeforeStart(t *testing.T) {
	s, _ := New(1, "Ordinary", 3)
	s.Occupy("a", "A")
	s.Occupy("b", "B")
	s.MarkLeft("b", LeaveDisconnect)

	if s.Started || s.Finished {
		t.Fatalf("pre-start leave must not start or finish the session: %+v", s)
	}
	idx, err := s.Occupy("d", "D")
	if err != nil {
		t.Fatalf("refill vacated slot: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected slot 1 to be reused, got %d", idx)
	}
	if s.Slots[1].Aborted {
		t.Fatal("refilled slot must not stay aborted")
	}
}

func TestAdvanceSkipsIneligibleSlots(t *testing.T) {
	s, _ := New(1, "Ordinary", 4)
	for _, id := range []string{"a", "b", "c", "d"} {
		s.Occupy(id, id)
	}
	s.Started = true
	s.Slots[1].Active = false
	s.Slots[1].Aborted = true

	s.Advance() // from 0, slot 1 aborted
	if s.Turn != 2 {
		t.Fatalf("expected turn 2, got %d", s.Turn)
	}
	s.Advance()
	if s.Turn != 3 {
		t.Fatalf("expected turn 3, got %d", s.Turn)
	}
	s.Advance() // wraps past aborted slot 1 back to 0
	if s.Turn != 0 {
		t.Fatalf("expected turn to wrap to 0, got %d", s.Turn)
	}
}

func TestAdvanceWithNoEligibleSlotFinishes(t *testing.T) {
	s, _ := New(1, "Ordinary", 3)
	for _, id := range []string{"a", "b", "c"} {
		s.Occupy(id, id)
	}
	s.Started = true
	for i := 1; i < 3; i++ {
		s.Slots[i].Active = false
		s.Slots[i].Aborted = true
	}

	// Only slot 0 is eligible and it holds the pointer already; the
	// scan comes back around empty-handed.
	s.Advance()
	if !s.Finished {
		t.Fatal("expected session to finish")
	}
	if s.Turn != 0 {
		t.Fatalf("turn pointer must be unchanged, got %d", s.Turn)
	}
}

func TestLeaveOfCurrentPlayerAdvancesTurn(t *testing.T) {
	s, _ := New(1, "Ordinary", 3)
	for _, id := range []string{"a", "b", "c"} {
		s.Occupy(id, id)
	}
	s.Started = true

	if err := s.MarkLeft("a", LeaveDisconnect); err != nil {
		t.Fatalf("mark left: %v", err)
	}
	if s.Turn != 1 {
		t.Fatalf("expected turn to advance to 1, got %d", s.Turn)
	}
	if s.Finished {
		t.Fatal("two active players remain, session must not finish")
	}
}

func TestFinishedIsTerminal(t *testing.T) {
	s, _ := New(1, "Ordinary", 2)
	s.Occupy("a", "A")
	s.Occupy("b", "B")
	s.Started = true
	s.MarkLeft("b", LeaveDisconnect)

	if !s.Finished {
		t.Fatal("expected session to finish with one active player")
	}
	turn, connected := s.Turn, s.Connected
	if err := s.MarkLeft("a", LeaveDisconnect); err != nil {
		t.Fatalf("mark left on finished session: %v", err)
	}
	if s.Turn != turn || s.Connected != connected {
		t.Fatal("finished session must not mutate")
	}
}

func TestAllLeaveBeforeStartFinishes(t *testing.T) {
	s, _ := New(1, "Ordinary", 2)
	s.Occupy("a", "A")
	s.MarkLeft("a", LeaveDisconnect)
	if !s.Finished {
		t.Fatal("expected empty unstarted session to finish")
	}
}

func TestRecordRollOverwrites(t *testing.T) {
	s, _ := New(1, "Ordinary", 1)
	s.RecordRoll([]int{1, 2, 3, 4, 5})
	s.RecordRoll([]int{6, 6})
	if !reflect.DeepEqual(s.LastRoll, []int{6, 6}) {
		t.Fatalf("expected last roll [6 6], got %v", s.LastRoll)
	}
}

func TestViewRoundTrip(t *testing.T) {
	s, _ := New(7, "Maxi", 3)
	s.Occupy("a", "Alice")
	s.Occupy("b", "Bob")
	s.Occupy("c", "Cleo")
	s.Started = true
	s.RecordRoll([]int{3, 1, 4, 1, 5})
	s.Advance()
	s.MarkLeft("c", LeaveAbort)

	got := FromView(s.View())
	want := &Session{
		ID:        s.ID,
		Kind:      s.Kind,
		Capacity:  s.Capacity,
		Slots:     append([]Slot(nil), s.Slots...),
		Connected: s.Connected,
		Started:   s.Started,
		Finished:  s.Finished,
		Turn:      s.Turn,
		LastRoll:  append([]int(nil), s.LastRoll...),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}
