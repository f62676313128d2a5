package wsserver

import (
	"encoding/json"
	"sync"

	"github.com/park285/Cheese-Blokus/internal/adapter/blokuspresenter"
	"github.com/park285/Cheese-Blokus/internal/obslog"
	"github.com/park285/Cheese-Blokus/internal/pvpblokus"
	"github.com/park285/Cheese-Blokus/pkg/blokusdto"
	"go.uber.org/zap"
)

// client is one live websocket connection.
type client struct {
	id   pvpblokus.EndpointID
	send chan []byte

	roomsMu sync.Mutex
	rooms   map[string]struct{}

	kickOnce sync.Once
	kicked   chan struct{}
}

func newClient(id pvpblokus.EndpointID, buffer int) *client {
	return &client{id: id, send: make(chan []byte, buffer), rooms: map[string]struct{}{}, kicked: make(chan struct{})}
}

func (c *client) join(roomID string) {
	c.roomsMu.Lock()
	c.rooms[roomID] = struct{}{}
	c.roomsMu.Unlock()
}

func (c *client) inRoom(roomID string) bool {
	c.roomsMu.Lock()
	defer c.roomsMu.Unlock()
	_, ok := c.rooms[roomID]
	return ok
}

func (c *client) roomIDs() []string {
	c.roomsMu.Lock()
	defer c.roomsMu.Unlock()
	out := make([]string, 0, len(c.rooms))
	for id := range c.rooms {
		out = append(out, id)
	}
	return out
}

// kick asks the writer to drop the connection. Safe to call repeatedly.
func (c *client) kick() { c.kickOnce.Do(func() { close(c.kicked) }) }

// Hub routes session events to the connections they address. It is a pvpblokus.Sink.
type Hub struct {
	presenter *blokuspresenter.Presenter

	mu      sync.RWMutex
	clients map[pvpblokus.EndpointID]*client
}

func NewHub(p *blokuspresenter.Presenter) *Hub {
	return &Hub{presenter: p, clients: map[pvpblokus.EndpointID]*client{}}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
}

// unregister removes c and closes its send queue. No frame is enqueued for c afterwards.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if cur, ok := h.clients[c.id]; ok && cur == c {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()
}

// Len returns the number of live connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Deliver(ev pvpblokus.Event) {
	if len(ev.To) == 0 {
		return
	}
	f, err := h.presenter.Event(ev)
	if err != nil {
		obslog.L().Warn("ws_event_encode", zap.String("room_id", ev.RoomID), zap.String("kind", string(ev.Kind)), zap.Error(err))
		return
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	for _, ep := range ev.To {
		h.sendTo(ep, raw)
	}
}

// Send enqueues one frame for ep. It reports false when ep is gone or too slow.
func (h *Hub) Send(ep pvpblokus.EndpointID, f blokusdto.Frame) bool {
	raw, err := json.Marshal(f)
	if err != nil {
		return false
	}
	return h.sendTo(ep, raw)
}

func (h *Hub) sendTo(ep pvpblokus.EndpointID, raw []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[ep]
	if !ok {
		return false
	}
	select {
	case c.send <- raw:
		return true
	default:
		// a client that cannot keep up would miss board updates; drop it so it reconnects with a snapshot
		obslog.L().Warn("ws_slow_consumer", zap.String("endpoint", string(ep)))
		c.kick()
		return false
	}
}
