package mapview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps the sessions of all open pages. Sessions idle for longer than
// the idle TTL are dropped by Sweep.
type Store struct {
	surface Surface
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore(surface Surface, idleTTL time.Duration) *Store {
	return &Store{
		surface:  surface,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Surface returns the map configuration sessions are created with.
func (st *Store) Surface() Surface {
	return st.surface
}

// Create starts a new session.
func (st *Store) Create() *Session {
	now := st.now()
	s := newSession(uuid.NewString(), st.surface, now)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.id] = s
	return s
}

// Get returns the session with the given id.
func (st *Store) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if ok {
		s.touch(st.now())
	}
	return s, ok
}

// GetOrCreate returns the session with the given id, or a new session when
// the id is unknown or expired.
func (st *Store) GetOrCreate(id string) *Session {
	if s, ok := st.Get(id); ok {
		return s
	}
	return st.Create()
}

// Delete removes the session and reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes idle sessions and returns how many were removed.
func (st *Store) Sweep() int {
	if st.idleTTL <= 0 {
		return 0
	}
	cutoff := st.now().Add(-st.idleTTL)

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (st *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}
