package session

import (
	"sort"
	"sync"

	"yatzy-backend/internal/game"
)

// Registry owns the set of live sessions and the id sequence. Its
// lock covers only the map and counter; each session carries its own
// lock for field mutation.
type Registry struct {
	mu       sync.RWMutex
	nextID   int
	sessions map[int]*game.Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[int]*game.Session{}}
}

// Create allocates the next id and stores a fresh session.
func (r *Registry) Create(kind string, capacity int) (*game.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := game.New(r.nextID, kind, capacity)
	if err != nil {
		return nil, err
	}
	r.nextID++
	r.sessions[s.ID] = s
	return s, nil
}

// FindJoinable returns the open session with the lowest id matching
// kind and capacity, or nil. First match rather than best fit keeps
// matchmaking order-stable.
func (r *Registry) FindJoinable(kind string, capacity int) *game.Session {
	for _, s := range r.All() {
		s.Lock()
		ok := s.Kind == kind && s.Capacity == capacity &&
			!s.Started && !s.Finished && !s.IsFull()
		s.Unlock()
		if ok {
			return s
		}
	}
	return nil
}

func (r *Registry) Get(id int) (*game.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove drops the session; removing an unknown id is a no-op.
func (r *Registry) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// All returns the stored sessions in ascending id order.
func (r *Registry) All() []*game.Session {
	r.mu.RLock()
	out := make([]*game.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Views snapshots every stored session for the session-list broadcast.
func (r *Registry) Views() []game.View {
	all := r.All()
	views := make([]game.View, 0, len(all))
	for _, s := range all {
		s.Lock()
		views = append(views, s.View())
		s.Unlock()
	}
	return views
}
