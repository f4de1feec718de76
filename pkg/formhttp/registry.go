package formhttp

import (
	"container/list"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// liveSession is one in-progress form. mu serializes every call into session.
type liveSession struct {
	id       string
	form     string
	visitor  string
	schema   *form.Schema
	mu       sync.Mutex
	session  *form.Session
	lastSeen time.Time
}

// registry holds live sessions with least-recently-used eviction and an idle
// timeout. It is safe for concurrent use and never takes a session lock, so
// callers may use it while holding one.
type registry struct {
	capacity int
	idle     time.Duration
	now      func() time.Time

	mu       sync.Mutex
	items    map[string]*list.Element
	eviction *list.List
	onEvict  func(*liveSession)
}

func newRegistry(capacity int, idle time.Duration, now func() time.Time) (*registry, error) {
	if capacity <= 0 {
		return nil, errSessionCapacity
	}
	if now == nil {
		now = time.Now
	}
	return &registry{
		capacity: capacity,
		idle:     idle,
		now:      now,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}, nil
}

// put stores a new session, evicting the least recently used one when full.
func (r *registry) put(ls *liveSession) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ls.lastSeen = r.now()
	if elem, ok := r.items[ls.id]; ok {
		r.eviction.MoveToFront(elem)
		elem.Value = ls
		return
	}

	r.items[ls.id] = r.eviction.PushFront(ls)
	if r.eviction.Len() > r.capacity {
		r.removeElement(r.eviction.Back())
	}
}

// get returns the session and marks it recently used. Sessions idle longer
// than the timeout are dropped on access.
func (r *registry) get(id string) (*liveSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	elem, ok := r.items[id]
	if !ok {
		return nil, false
	}
	ls := elem.Value.(*liveSession)
	now := r.now()
	if r.idle > 0 && now.Sub(ls.lastSeen) > r.idle {
		r.removeElement(elem)
		return nil, false
	}
	ls.lastSeen = now
	r.eviction.MoveToFront(elem)
	return ls, true
}

func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	elem, ok := r.items[id]
	if !ok {
		return false
	}
	r.eviction.Remove(elem)
	delete(r.items, id)
	return true
}

// sweep drops every idle session and returns how many were dropped.
func (r *registry) sweep() int {
	if r.idle <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	dropped := 0
	for elem := r.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		if now.Sub(elem.Value.(*liveSession).lastSeen) <= r.idle {
			break
		}
		r.removeElement(elem)
		dropped++
		elem = prev
	}
	return dropped
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eviction.Len()
}

// Must be called with lock held.
func (r *registry) removeElement(elem *list.Element) {
	r.eviction.Remove(elem)
	ls := elem.Value.(*liveSession)
	delete(r.items, ls.id)
	if r.onEvict != nil {
		r.onEvict(ls)
	}
}
