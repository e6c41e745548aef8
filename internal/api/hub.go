package api

import (
	"sync"

	"github.com/bryanchriswhite/hyprwatch/internal/state"
)

// Hub keeps the latest snapshot and fans new ones out to subscribers. It is
// an emitter for the watcher.
type Hub struct {
	mu        sync.RWMutex
	latest    state.Snapshot
	listeners []chan state.Snapshot
}

func NewHub() *Hub {
	return &Hub{
		latest:    state.State{}.Snapshot(),
		listeners: make([]chan state.Snapshot, 0),
	}
}

// Emit records snap and notifies subscribers.
func (h *Hub) Emit(snap state.Snapshot) error {
	h.mu.Lock()
	h.latest = snap
	h.mu.Unlock()
	h.notifyListeners(snap)
	return nil
}

// Latest returns the most recent snapshot.
func (h *Hub) Latest() state.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Subscribe adds a listener for snapshot changes
func (h *Hub) Subscribe() chan state.Snapshot {
	ch := make(chan state.Snapshot, 16)
	h.mu.Lock()
	h.listeners = append(h.listeners, ch)
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener
func (h *Hub) Unsubscribe(ch chan state.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, listener := range h.listeners {
		if listener == ch {
			h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
			close(ch)
			break
		}
	}
}

func (h *Hub) notifyListeners(snap state.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, listener := range h.listeners {
		select {
		case listener <- snap:
		default:
			// Full buffer: drop the oldest so the newest is always queued.
			select {
			case <-listener:
			default:
			}
			select {
			case listener <- snap:
			default:
			}
		}
	}
}
