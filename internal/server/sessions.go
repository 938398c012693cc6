package server

import (
	"sync"
	"time"

	"github.com/ziadkadry99/ui-showcase/internal/session"
)

type sessionEntry struct {
	session  *session.Session
	lastSeen time.Time
	attached int
}

// registry tracks live sessions by id.
type registry struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	now     func() time.Time
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]*sessionEntry), now: time.Now}
}

func (r *registry) add(s *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[s.ID()] = &sessionEntry{session: s, lastSeen: r.now()}
}

// get returns the session and marks it as recently used.
func (r *registry) get(id string) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.session, true
}

// attach counts a live connection; attached sessions are never reaped.
func (r *registry) attach(id string, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[id]; ok {
		e.attached += delta
		e.lastSeen = r.now()
	}
}

func (r *registry) remove(id string) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	delete(r.entries, id)
	return e.session, true
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// idle removes and returns unattached sessions unused for longer than maxIdle.
func (r *registry) idle(maxIdle time.Duration) []*session.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-maxIdle)
	var out []*session.Session
	for id, e := range r.entries {
		if e.attached == 0 && e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			out = append(out, e.session)
		}
	}
	return out
}

// drain removes and returns every session.
func (r *registry) drain() []*session.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*session.Session, 0, len(r.entries))
	for id, e := range r.entries {
		delete(r.entries, id)
		out = append(out, e.session)
	}
	return out
}
