package notify

import (
	"context"
	"sync"
	"time"

	"emblem/internal/icons"
)

// Hub fans collection changes out to every subscribed view. The store
// publishes after each committed mutation; subscribers render whatever state
// the hub last delivered and never poll the database.
type Hub struct {
	mu      sync.Mutex
	subs    map[int]chan icons.CollectionState
	nextID  int
	current *icons.CollectionState
}

// NewHub builds an empty hub.
func NewHub() *Hub {
	return &Hub{subs: map[int]chan icons.CollectionState{}}
}

// Publish records the new state and delivers it to all subscribers. Delivery
// never blocks: a subscriber that has not drained its previous state loses the
// stale intermediate value and receives the latest instead.
func (h *Hub) Publish(state icons.CollectionState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = &state
	for _, ch := range h.subs {
		select {
		case ch <- state:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- state
		}
	}
}

// Current returns the last published state, or nil before the first publish.
func (h *Hub) Current() *icons.CollectionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Subscribe registers a view. The returned channel immediately carries the
// last published state when one exists. The unsubscribe func is idempotent.
func (h *Hub) Subscribe() (<-chan icons.CollectionState, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan icons.CollectionState, 1)
	if h.current != nil {
		ch <- *h.current
	}
	h.subs[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
		})
	}
	return ch, unsubscribe
}

// Wait blocks until a state with revision greater than since is published, the
// timeout elapses, or the context is canceled. It returns the state and true
// on success, nil and false otherwise.
func (h *Hub) Wait(ctx context.Context, since int64, timeout time.Duration) (*icons.CollectionState, bool) {
	if current := h.Current(); current != nil && current.Revision > since {
		state := *current
		return &state, true
	}

	ch, unsubscribe := h.Subscribe()
	defer unsubscribe()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case state := <-ch:
			if state.Revision > since {
				return &state, true
			}
		case <-timer.C:
			return nil, false
		case <-ctx.Done():
			return nil, false
		}
	}
}
