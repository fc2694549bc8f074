package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alecKarfonta/electroplating/pkg/errdefs"
	"github.com/alecKarfonta/electroplating/pkg/stl"
)

const (
	// DefaultTimeout is how long an idle session survives.
	DefaultTimeout = time.Hour

	// DefaultMaxSessions caps concurrent sessions.
	DefaultMaxSessions = 1000

	// sweepInterval is how often the background sweep looks for expired
	// sessions.
	sweepInterval = time.Minute
)

// Info describes one session for listing purposes.
type Info struct {
	SessionID     string    `json:"session_id"`
	Name          string    `json:"filename"`
	TriangleCount int       `json:"triangle_count"`
	UploadTime    time.Time `json:"upload_time"`
	LastAccessed  time.Time `json:"last_accessed"`
}

// Stats summarizes the store's population.
type Stats struct {
	TotalSessions   int `json:"total_sessions"`
	ActiveSessions  int `json:"active_sessions"`
	ExpiredSessions int `json:"expired_sessions"`
	MaxSessions     int `json:"max_sessions"`
}

// Store is a keyed collection of session states with idle expiry and a
// capacity limit. Operations on distinct sessions proceed in parallel; the
// store's own mutex only guards the session map.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*State

	timeout     time.Duration
	maxSessions int
	log         *slog.Logger
	done        chan struct{}
	closeOnce   sync.Once
}

// NewStore creates a session store and starts its background expiry sweep.
// Zero values select the defaults.
func NewStore(timeout time.Duration, maxSessions int, log *slog.Logger) *Store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if log == nil {
		log = slog.Default()
	}

	st := &Store{
		sessions:    make(map[string]*State),
		timeout:     timeout,
		maxSessions: maxSessions,
		log:         log,
		done:        make(chan struct{}),
	}
	go st.sweepLoop()
	return st
}

// Create registers a new session for a parsed mesh and returns its ID. If
// the store is full it sweeps expired sessions first; if still full it
// fails with CapacityExceededError.
func (st *Store) Create(m *stl.Mesh, name string) (string, *State, error) {
	st.mu.Lock()
	if len(st.sessions) >= st.maxSessions {
		st.removeExpiredLocked(time.Now())
	}
	if len(st.sessions) >= st.maxSessions {
		st.mu.Unlock()
		return "", nil, &errdefs.CapacityExceededError{Limit: st.maxSessions}
	}

	id := uuid.NewString()
	state := NewState(m, name)
	st.sessions[id] = state
	st.mu.Unlock()

	return id, state, nil
}

// Get returns the state for a session ID, bumping its last-access time.
// Missing or expired sessions fail with NotFoundError.
func (st *Store) Get(id string) (*State, error) {
	now := time.Now()

	st.mu.Lock()
	state, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok || state.expired(now, st.timeout) {
		return nil, errdefs.NotFound("session", id)
	}

	state.touch(now)
	return state, nil
}

// Delete removes a session. The state is marked unavailable before its
// mesh is released, so in-flight operations finish first.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	state, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	if !ok {
		return errdefs.NotFound("session", id)
	}
	state.close()
	return nil
}

// List returns info for all live sessions.
func (st *Store) List() []Info {
	st.mu.Lock()
	defer st.mu.Unlock()

	infos := make([]Info, 0, len(st.sessions))
	for id, state := range st.sessions {
		state.mu.RLock()
		infos = append(infos, Info{
			SessionID:     id,
			Name:          state.name,
			TriangleCount: state.current.TriangleCount(),
			UploadTime:    state.created,
			LastAccessed:  state.lastAccessed,
		})
		state.mu.RUnlock()
	}
	return infos
}

// Stats reports the store's population counts.
func (st *Store) Stats() Stats {
	now := time.Now()

	st.mu.Lock()
	defer st.mu.Unlock()

	stats := Stats{
		TotalSessions: len(st.sessions),
		MaxSessions:   st.maxSessions,
	}
	for _, state := range st.sessions {
		if state.expired(now, st.timeout) {
			stats.ExpiredSessions++
		} else {
			stats.ActiveSessions++
		}
	}
	return stats
}

// Sweep removes all expired sessions immediately and reports how many
// were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	removed := st.removeExpiredLocked(time.Now())
	st.mu.Unlock()

	for _, state := range removed {
		state.close()
	}
	return len(removed)
}

// Close stops the background sweep and releases all sessions.
func (st *Store) Close() {
	st.closeOnce.Do(func() {
		close(st.done)
	})

	st.mu.Lock()
	states := make([]*State, 0, len(st.sessions))
	for id, state := range st.sessions {
		states = append(states, state)
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	for _, state := range states {
		state.close()
	}
}

// removeExpiredLocked unlinks expired sessions from the map and returns
// them. Callers must close each returned state outside the store lock.
func (st *Store) removeExpiredLocked(now time.Time) []*State {
	var removed []*State
	for id, state := range st.sessions {
		if state.expired(now, st.timeout) {
			delete(st.sessions, id)
			removed = append(removed, state)
		}
	}
	return removed
}

func (st *Store) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				st.log.Info("expired sessions removed", "count", n)
			}
		}
	}
}
