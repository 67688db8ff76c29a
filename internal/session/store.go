package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fitchef/ember/internal/errors"
	"github.com/fitchef/ember/internal/services/recipe"
	"github.com/google/uuid"
)

// Store is an in-memory session registry. Sessions are process-local and
// expire after a TTL of inactivity; there is no persistence across
// restarts.
type Store struct {
	provider     recipe.Provider
	ttl          time.Duration
	historyLimit int

	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// NewStore creates a registry whose sessions use the given provider.
func NewStore(provider recipe.Provider, ttl time.Duration, historyLimit int) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		provider:     provider,
		ttl:          ttl,
		historyLimit: historyLimit,
		sessions:     make(map[string]*entry),
	}
}

// Create registers a new idle session and returns it.
func (st *Store) Create() *Session {
	s := New(uuid.NewString(), st.provider, st.historyLimit)

	st.mu.Lock()
	st.sessions[s.ID()] = &entry{session: s, lastSeen: time.Now()}
	st.mu.Unlock()

	return s
}

// Get returns the session with the given ID and refreshes its TTL.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("session not found", "SESSION_NOT_FOUND")
	}
	e.lastSeen = time.Now()
	return e.session, nil
}

// Delete removes the session with the given ID. Deleting an unknown ID is
// a no-op.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Run sweeps expired sessions until the context is cancelled.
func (st *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(st.ttl / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := st.sweep(time.Now()); removed > 0 {
				slog.Info("Swept expired sessions", "removed", removed, "remaining", st.Len())
			}
		}
	}
}

func (st *Store) sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, e := range st.sessions {
		if now.Sub(e.lastSeen) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
