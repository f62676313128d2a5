package pvpblokus

import (
    "context"
    "sync"
    "time"

    "github.com/park285/Cheese-Blokus/internal/obslog"
    "go.uber.org/zap"
)

// Recorder is a Sink that forwards game results to one or more stores
// from a background worker. Deliver never blocks; results are dropped when the queue is full.
type Recorder struct {
    stores  []ResultStore
    queue   chan *Result
    timeout time.Duration

    mu     sync.RWMutex
    closed bool
    done   chan struct{}
}

func NewRecorder(timeout time.Duration, stores ...ResultStore) *Recorder {
    if timeout <= 0 { timeout = 5 * time.Second }
    r := &Recorder{
        stores:  stores,
        queue:   make(chan *Result, 64),
        timeout: timeout,
        done:    make(chan struct{}),
    }
    go r.run()
    return r
}

func (r *Recorder) Deliver(ev Event) {
    if ev.Kind != EventGameOver || ev.Replay { return }
    res, ok := ev.Payload.(*Result)
    if !ok || res == nil { return }
    r.mu.RLock()
    defer r.mu.RUnlock()
    if r.closed { return }
    select {
    case r.queue <- res.clone():
    default:
        obslog.L().Warn("result_persist_dropped", zap.String("room_id", res.RoomID))
    }
}

func (r *Recorder) run() {
    defer close(r.done)
    for res := range r.queue {
        for _, st := range r.stores {
            ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
            err := st.SaveResult(ctx, res)
            cancel()
            if err != nil {
                obslog.L().Warn("result_persist", zap.String("room_id", res.RoomID), zap.Error(err))
                continue
            }
            obslog.L().Info("result_persist", zap.String("room_id", res.RoomID), zap.String("winner", res.Winner))
        }
    }
}

// Close drains queued results and stops the worker.
func (r *Recorder) Close(ctx context.Context) error {
    r.mu.Lock()
    if !r.closed {
        r.closed = true
        close(r.queue)
    }
    r.mu.Unlock()
    select {
    case <-r.done:
        return nil
    case <-ctx.Done():
        return ctx.Err()
    }
}
