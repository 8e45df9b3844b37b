package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownInput indicates an event for a property no callback listens to.
var ErrUnknownInput = errors.New("unknown input")

// Event is one input change sent by a page.
type Event struct {
	Component string `json:"component"`
	Property  string `json:"property"`
	Value     string `json:"value"`
}

// Key returns the input the event changes.
func (e Event) Key() Key {
	return Key{Component: e.Component, Property: e.Property}
}

// Session holds one browser session's input values.
type Session struct {
	ID string

	mu       sync.Mutex
	values   map[Key]string
	lastSeen time.Time
}

// Values returns a copy of the session's current input values.
func (s *Session) Values() map[Key]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Key]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// SessionStore owns every live session. Sessions never share input values.
type SessionStore struct {
	dispatcher *Dispatcher
	defaults   map[Key]string

	mu       sync.Mutex
	sessions map[string]*Session

	// Now is the clock used for idle tracking. Tests may replace it.
	Now func() time.Time
}

// NewSessionStore returns a store whose new sessions start from defaults.
func NewSessionStore(d *Dispatcher, defaults map[Key]string) *SessionStore {
	cp := make(map[Key]string, len(defaults))
	for k, v := range defaults {
		cp[k] = v
	}
	return &SessionStore{
		dispatcher: d,
		defaults:   cp,
		sessions:   make(map[string]*Session),
		Now:        time.Now,
	}
}

// Get returns the session with the given id. Unknown ids are recreated from
// the defaults, and ids that are not UUIDs are replaced by a fresh one.
func (st *SessionStore) Get(id string) *Session {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if !ok {
		values := make(map[Key]string, len(st.defaults))
		for k, v := range st.defaults {
			values[k] = v
		}
		sess = &Session{ID: id, values: values}
		st.sessions[id] = sess
	}
	sess.mu.Lock()
	sess.lastSeen = st.Now()
	sess.mu.Unlock()
	return sess
}

// Apply records ev in the session and returns the outputs that depend on it.
// Events for one session are applied one at a time.
func (st *SessionStore) Apply(sess *Session, ev Event) (map[Key]any, error) {
	key := ev.Key()
	if !st.dispatcher.IsInput(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInput, key)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.values[key] = ev.Value
	sess.lastSeen = st.Now()
	return st.dispatcher.Dispatch(sess.values, key)
}

// Initial evaluates every callback against the session's current values.
func (st *SessionStore) Initial(sess *Session) (map[Key]any, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return st.dispatcher.Initial(sess.values)
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Prune drops sessions idle for longer than idle and returns how many went.
func (st *SessionStore) Prune(idle time.Duration) int {
	cutoff := st.Now().Add(-idle)

	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, sess := range st.sessions {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if stale {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// RunPruner prunes idle sessions every interval until ctx is done. onPrune,
// if set, is called with the number of sessions removed by each sweep that
// removed any.
func (st *SessionStore) RunPruner(ctx context.Context, interval, idle time.Duration, onPrune func(int)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := st.Prune(idle); n > 0 && onPrune != nil {
				onPrune(n)
			}
		}
	}
}
