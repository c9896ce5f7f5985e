package session

import "sync"

// Event is a session lifecycle notification.
type Event string

const (
	// EventConnected is emitted once after a successful Connect.
	EventConnected Event = "connected"
	// EventDisconnected is emitted once after a Disconnect that actually
	// released a connection.
	EventDisconnected Event = "disconnected"
)

// Listener receives lifecycle events for a single manager instance.
type Listener func(Event)

// registry is a per-instance listener list. Scoped to the manager, never
// shared across instances.
type registry struct {
	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func (r *registry) add(fn Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listeners == nil {
		r.listeners = make(map[int]Listener)
	}
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// notify delivers ev to every registered listener, synchronously, in
// unspecified order.
func (r *registry) notify(ev Event) {
	r.mu.Lock()
	fns := make([]Listener, 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
