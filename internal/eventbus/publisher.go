package eventbus

import (
    "context"
    "encoding/json"
    "sync"
    "time"

    "github.com/park285/Cheese-Blokus/internal/obslog"
    "github.com/park285/Cheese-Blokus/internal/pvpblokus"
    "go.uber.org/zap"
)

// Publisher mirrors room events to Redis from a single background worker.
// Deliver never blocks a room: when the queue is full the event is dropped and logged.
type Publisher struct {
    store   *Store
    queue   chan Message
    timeout time.Duration
    now     func() time.Time

    mu     sync.RWMutex
    closed bool
    done   chan struct{}
}

func NewPublisher(store *Store, buffer int) *Publisher {
    if buffer <= 0 { buffer = 256 }
    p := &Publisher{
        store:   store,
        queue:   make(chan Message, buffer),
        timeout: 2 * time.Second,
        now:     time.Now,
        done:    make(chan struct{}),
    }
    go p.run()
    return p
}

func (p *Publisher) Deliver(ev pvpblokus.Event) {
    // seated events carry reconnect tokens; replays repeat what was already published
    if ev.Kind == pvpblokus.EventSeated || ev.Replay { return }
    msg, err := p.encode(ev)
    if err != nil {
        obslog.L().Warn("eventbus_publish_error", zap.String("room_id", ev.RoomID), zap.String("kind", string(ev.Kind)), zap.Error(err))
        return
    }
    p.mu.RLock()
    defer p.mu.RUnlock()
    if p.closed { return }
    select {
    case p.queue <- msg:
    default:
        obslog.L().Warn("eventbus_publish_dropped", zap.String("room_id", ev.RoomID), zap.String("kind", string(ev.Kind)))
    }
}

func (p *Publisher) encode(ev pvpblokus.Event) (Message, error) {
    m := Message{Kind: string(ev.Kind), RoomID: ev.RoomID, At: p.now()}
    for _, ep := range ev.To { m.To = append(m.To, string(ep)) }
    if ev.Payload != nil {
        raw, err := json.Marshal(ev.Payload)
        if err != nil { return Message{}, err }
        m.Payload = raw
    }
    return m, nil
}

func (p *Publisher) run() {
    defer close(p.done)
    for m := range p.queue {
        raw, err := json.Marshal(m)
        if err != nil { continue }
        ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
        err = p.store.Append(ctx, m.RoomID, raw)
        cancel()
        if err != nil {
            obslog.L().Warn("eventbus_publish_error", zap.String("room_id", m.RoomID), zap.String("kind", m.Kind), zap.Error(err))
        }
    }
}

// Close flushes queued events and stops the worker.
func (p *Publisher) Close(ctx context.Context) error {
    p.mu.Lock()
    if !p.closed {
        p.closed = true
        close(p.queue)
    }
    p.mu.Unlock()
    select {
    case <-p.done:
        return nil
    case <-ctx.Done():
        return ctx.Err()
    }
}
