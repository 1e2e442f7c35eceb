package entity

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kondoo/console/core"
)

const defaultFanout = 8

// Hydrator compensates for a list endpoint that omits fields the console
// needs: after every list-replace it fetches the detail record for each
// sparse entity exactly once and merges it into whatever the collection
// looks like by the time the fetch resolves. Blocking the first render on
// N+1 detail calls is not an option, so the fetches fan out while the list
// stays interactive.
type Hydrator[E Record] struct {
	store  *Store[E]
	sparse func(E) bool
	fetch  func(ctx context.Context, id string) (E, error)
	log    core.Logger
	fanout int

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

func NewHydrator[E Record](
	store *Store[E],
	sparse func(E) bool,
	fetch func(ctx context.Context, id string) (E, error),
	log core.Logger,
) *Hydrator[E] {
	return &Hydrator[E]{
		store:    store,
		sparse:   sparse,
		fetch:    fetch,
		log:      log,
		fanout:   defaultFanout,
		inflight: make(map[string]struct{}),
	}
}

// ReplaceAll applies a fresh list response and kicks hydration for the
// records that arrived sparse. Sparseness is judged on the incoming records
// before the store's completeness merge backfills them, so a stale record
// is re-fetched even while its previously-hydrated fields keep rendering.
func (h *Hydrator[E]) ReplaceAll(ctx context.Context, seq Seq, items []E) {
	stale := make([]string, 0)
	for _, item := range items {
		if h.sparse(item) {
			stale = append(stale, item.EntityID())
		}
	}
	h.store.ReplaceAll(seq, items)
	h.kick(ctx, stale)
}

// Rehydrate re-evaluates the current collection and fetches whatever is
// still sparse (e.g. records whose detail fetch failed on a previous pass).
func (h *Hydrator[E]) Rehydrate(ctx context.Context) {
	var stale []string
	for _, item := range h.store.Items() {
		if h.sparse(item) {
			stale = append(stale, item.EntityID())
		}
	}
	h.kick(ctx, stale)
}

// Wait blocks until every detail fetch in flight at call time has resolved.
func (h *Hydrator[E]) Wait() {
	h.wg.Wait()
}

// kick starts detail fetches for the given ids, skipping the ones already
// in flight: at most one outstanding fetch per id, ever. New sparse ids may
// start an overlapping pass while an earlier pass is still draining.
func (h *Hydrator[E]) kick(ctx context.Context, ids []string) {
	h.mu.Lock()
	fresh := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, busy := h.inflight[id]; busy {
			continue
		}
		h.inflight[id] = struct{}{}
		fresh = append(fresh, id)
	}
	if len(fresh) > 0 {
		h.wg.Add(len(fresh))
		h.store.setHydrating(true)
	}
	h.mu.Unlock()
	if len(fresh) == 0 {
		return
	}

	go func() {
		g := new(errgroup.Group)
		g.SetLimit(h.fanout)
		for _, id := range fresh {
			id := id
			seq := h.store.Issue()
			g.Go(func() error {
				defer h.done(id)
				full, err := h.fetch(ctx, id)
				if err != nil {
					// leave the record sparse; the next list-replace or
					// Rehydrate retries it
					h.log.Warn("detail fetch failed", map[string]interface{}{"id": id}, err)
					return nil
				}
				h.store.Apply(seq, full)
				return nil
			})
		}
		_ = g.Wait()
	}()
}

func (h *Hydrator[E]) done(id string) {
	h.mu.Lock()
	delete(h.inflight, id)
	drained := len(h.inflight) == 0
	h.mu.Unlock()
	if drained {
		h.store.setHydrating(false)
	}
	h.wg.Done()
}
