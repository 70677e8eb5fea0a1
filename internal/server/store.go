package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/anchorui/pkg/errors"
	"github.com/matzehuels/anchorui/pkg/pipeline"
)

// session is one live scene. mu serializes every access to the tree.
type session struct {
	mu      sync.Mutex
	id      string
	layout  *pipeline.Layout
	created time.Time
	touched time.Time
	closed  bool
}

// close removes the tree from its document. Callers hold mu.
func (sess *session) close() {
	if !sess.closed {
		sess.layout.Root.Remove()
		sess.closed = true
	}
}

type store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	max      int
}

func newStore(max int) *store {
	return &store{sessions: make(map[string]*session), max: max}
}

// add registers l under a fresh uuid, evicting the least recently used
// session when the store is full.
func (st *store) add(l *pipeline.Layout) *session {
	now := time.Now()
	sess := &session{id: uuid.NewString(), layout: l, created: now, touched: now}

	st.mu.Lock()
	var evicted *session
	if len(st.sessions) >= st.max {
		for _, c := range st.sessions {
			if evicted == nil || c.touched.Before(evicted.touched) {
				evicted = c
			}
		}
		delete(st.sessions, evicted.id)
	}
	st.sessions[sess.id] = sess
	st.mu.Unlock()

	if evicted != nil {
		evicted.mu.Lock()
		evicted.close()
		evicted.mu.Unlock()
	}
	return sess
}

// acquire returns the locked session with id. Callers must unlock it.
func (st *store) acquire(id string) (*session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	sess.touched = time.Now()
	return sess, nil
}

func (st *store) remove(id string) error {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if !ok {
		return errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	sess.mu.Lock()
	sess.close()
	sess.mu.Unlock()
	return nil
}

// sweep closes sessions idle since before cutoff.
func (st *store) sweep(cutoff time.Time) int {
	st.mu.Lock()
	var stale []*session
	for id, sess := range st.sessions {
		sess.mu.Lock()
		idle := sess.touched.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			stale = append(stale, sess)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, sess := range stale {
		sess.mu.Lock()
		sess.close()
		sess.mu.Unlock()
	}
	return len(stale)
}

func (st *store) closeAll() {
	st.sweep(time.Now().Add(time.Hour))
}

func (st *store) len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// list returns the sessions ordered by creation time.
func (st *store) list() []*session {
	st.mu.RLock()
	out := make([]*session, 0, len(st.sessions))
	for _, sess := range st.sessions {
		out = append(out, sess)
	}
	st.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].created.Before(out[j].created) })
	return out
}
