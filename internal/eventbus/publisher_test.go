package eventbus

import (
    "context"
    "encoding/json"
    "fmt"
    "testing"
    "time"

    miniredis "github.com/alicebob/miniredis/v2"
    "github.com/park285/Cheese-Blokus/internal/pvpblokus"
)

func newTestStore(t *testing.T) *Store {
    t.Helper()
    mr, err := miniredis.Run()
    if err != nil { t.Fatalf("miniredis: %v", err) }
    t.Cleanup(func() { mr.Close() })
    rdb, err := NewClient(context.Background(), fmt.Sprintf("redis://%s/0", mr.Addr()))
    if err != nil { t.Fatalf("NewClient: %v", err) }
    t.Cleanup(func() { _ = rdb.Close() })
    return NewStore(rdb, "test:room:")
}

func TestPublisherMirrorsEvents(t *testing.T) {
    st := newTestStore(t)
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    sub, err := st.Subscribe(ctx, "abc123")
    if err != nil { t.Fatalf("Subscribe: %v", err) }

    p := NewPublisher(st, 8)
    p.Deliver(pvpblokus.Event{Kind: pvpblokus.EventUsedPieces, RoomID: "abc123", To: []pvpblokus.EndpointID{"a"}, Payload: pvpblokus.UsedPieces{0, 3}})
    p.Deliver(pvpblokus.Event{Kind: pvpblokus.EventGameOver, RoomID: "abc123", To: []pvpblokus.EndpointID{"a"}, Payload: &pvpblokus.Result{RoomID: "abc123"}, Replay: true})
    p.Deliver(pvpblokus.Event{Kind: pvpblokus.EventYourTurn, RoomID: "abc123", To: []pvpblokus.EndpointID{"a"}})

    select {
    case m := <-sub:
        if m.Kind != "update_used_pieces" || m.RoomID != "abc123" || len(m.To) != 1 { t.Fatalf("unexpected message %+v", m) }
        var used []int
        if err := json.Unmarshal(m.Payload, &used); err != nil || len(used) != 2 || used[1] != 3 { t.Fatalf("payload = %s err=%v", m.Payload, err) }
    case <-ctx.Done():
        t.Fatalf("no message received")
    }

    if err := p.Close(ctx); err != nil { t.Fatalf("Close: %v", err) }
    p.Deliver(pvpblokus.Event{Kind: pvpblokus.EventWaitTurn, RoomID: "abc123"})

    hist, err := st.History(ctx, "abc123", 10)
    if err != nil { t.Fatalf("History: %v", err) }
    if len(hist) != 2 || hist[1].Kind != "your_turn" { t.Fatalf("history = %+v", hist) }
}

func TestHistoryIsCapped(t *testing.T) {
    st := newTestStore(t)
    ctx := context.Background()
    for i := 0; i < historyLimit+5; i++ {
        raw, _ := json.Marshal(Message{Kind: fmt.Sprintf("k%d", i), RoomID: "r"})
        if err := st.Append(ctx, "r", raw); err != nil { t.Fatalf("Append: %v", err) }
    }
    hist, err := st.History(ctx, "r", 0)
    if err != nil { t.Fatalf("History: %v", err) }
    if len(hist) != historyLimit || hist[0].Kind != "k5" { t.Fatalf("len=%d first=%s", len(hist), hist[0].Kind) }
}

func TestParseRedisURL(t *testing.T) {
    o, err := parseRedisURL("redis://:secret@localhost:6380/2")
    if err != nil { t.Fatalf("parse: %v", err) }
    if o.Addr != "localhost:6380" || o.Password != "secret" || o.DB != 2 { t.Fatalf("unexpected options %+v", o) }
    if _, err := parseRedisURL("http://localhost"); err == nil { t.Fatalf("expected scheme error") }
}
