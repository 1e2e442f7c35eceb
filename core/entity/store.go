package entity

import (
	"sync"
	"sync/atomic"
)

// Seq orders merges. Every mutating request takes a sequence at issue time;
// the store refuses to apply a response whose request was issued before the
// last one already applied for that id, so a slow response can never clobber
// a newer record.
type Seq uint64

type Option[E Record] func(*Store[E])

// WithMerge installs the kind's completeness merge: given an incoming record
// and the resident record with the same id, it returns the incoming record
// with its absent fields backfilled from the resident one. Kinds whose list
// endpoint returns complete records do not need one.
func WithMerge[E Record](merge func(incoming, prev E) E) Option[E] {
	return func(s *Store[E]) { s.merge = merge }
}

// Store holds the authoritative in-memory collection for one resource kind,
// plus the request-status flag and last error the view layer renders.
// All access is safe for concurrent use.
type Store[E Record] struct {
	merge func(incoming, prev E) E

	seq uint64 // atomic

	mu        sync.RWMutex
	items     []E
	loading   bool
	errMsg    string
	hydrating bool
	page      *Pagination
	applied   map[string]Seq
}

func NewStore[E Record](opts ...Option[E]) *Store[E] {
	s := &Store[E]{applied: make(map[string]Seq)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue stamps the start of a mutating request.
func (s *Store[E]) Issue() Seq {
	return Seq(atomic.AddUint64(&s.seq, 1))
}

// Begin marks an operation as dispatched: loading set, previous error cleared.
func (s *Store[E]) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.errMsg = ""
}

// Finish clears the loading flag after a successful operation.
func (s *Store[E]) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// Fail records a failed operation. It never touches items: a failed fetch
// keeps showing the previous collection.
func (s *Store[E]) Fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.errMsg = msg
}

// ReplaceAll applies a fresh list response. The incoming list is
// authoritative for membership and order, but a resident record that is more
// complete than its incoming counterpart keeps its extra fields (via the
// merge function), and a resident record applied after this request was
// issued is kept as-is.
func (s *Store[E]) ReplaceAll(seq Seq, items []E) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]E, 0, len(items))
	applied := make(map[string]Seq, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := item.EntityID()
		if _, dup := seen[id]; dup {
			continue // id uniqueness: first occurrence wins
		}
		seen[id] = struct{}{}

		if idx := indexOf(s.items, id); idx >= 0 {
			if s.applied[id] > seq {
				// resident record is newer than this list response
				next = append(next, s.items[idx])
				applied[id] = s.applied[id]
				continue
			}
			if s.merge != nil {
				item = s.merge(item, s.items[idx])
			}
		}
		next = append(next, item)
		applied[id] = seq
	}
	s.items = next
	s.applied = applied
	s.loading = false
}

// Insert applies a create response: new records go to the head of the
// collection; an id that already exists is replaced in place.
func (s *Store[E]) Insert(seq Seq, item E) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := item.EntityID()
	if idx := indexOf(s.items, id); idx >= 0 {
		s.applyAt(seq, idx, item)
		return
	}
	if s.applied[id] > seq {
		return
	}
	s.items = append([]E{item}, s.items...)
	s.applied[id] = seq
	s.loading = false
}

// Apply applies an update response by id, preserving the record's position.
// An id that is no longer resident is a valid race (the collection was
// replaced or the record deleted while the request was in flight): no-op.
func (s *Store[E]) Apply(seq Seq, item E) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.items, item.EntityID())
	if idx < 0 {
		s.loading = false
		return
	}
	s.applyAt(seq, idx, item)
}

// applyAt merges item over s.items[idx] subject to the sequence guard.
// Callers hold s.mu.
func (s *Store[E]) applyAt(seq Seq, idx int, item E) {
	id := item.EntityID()
	if s.applied[id] > seq {
		s.loading = false
		return
	}
	if s.merge != nil {
		item = s.merge(item, s.items[idx])
	}
	s.items[idx] = item
	s.applied[id] = seq
	s.loading = false
}

// Patch mutates a resident record locally (optimistic change). It does not
// advance the applied sequence: the matching server response, or the revert
// on failure, settles the record.
func (s *Store[E]) Patch(id string, mutate func(*E)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.items, id)
	if idx < 0 {
		return false
	}
	mutate(&s.items[idx])
	return true
}

// Remove drops the record with the given id. Only called once the server
// confirmed the deletion.
func (s *Store[E]) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.items, id)
	if idx < 0 {
		s.loading = false
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	delete(s.applied, id)
	s.loading = false
}

// Items returns a copy of the current collection.
func (s *Store[E]) Items() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]E, len(s.items))
	copy(items, s.items)
	return items
}

// Get returns a copy of the record with the given id.
func (s *Store[E]) Get(id string) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := indexOf(s.items, id); idx >= 0 {
		return s.items[idx], true
	}
	var zero E
	return zero, false
}

func (s *Store[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[E]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store[E]) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *Store[E]) Hydrating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrating
}

func (s *Store[E]) setHydrating(hydrating bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrating = hydrating
}

// SetPagination records the list envelope's pagination block (paginated
// kinds only; orders).
func (s *Store[E]) SetPagination(page *Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

func (s *Store[E]) Pagination() *Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

func indexOf[E Record](items []E, id string) int {
	for i, item := range items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}
