package wsclient

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/park285/Cheese-Blokus/internal/adapter/blokuspresenter"
	"github.com/park285/Cheese-Blokus/internal/pvpblokus"
	"github.com/park285/Cheese-Blokus/internal/render"
	"github.com/park285/Cheese-Blokus/internal/wsserver"
	"github.com/park285/Cheese-Blokus/pkg/blokusdto"
)

func newServer(t *testing.T) string {
	t.Helper()
	p := blokuspresenter.NewPresenter(nil)
	hub := wsserver.NewHub(p)
	dir := pvpblokus.NewDirectory(pvpblokus.WithSink(hub))
	ts := httptest.NewServer(wsserver.New(hub, dir, p, render.NewPNGRenderer(0), wsserver.Options{}).Handler())
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func TestClientRoundTrip(t *testing.T) {
	c := New(newServer(t), 0)
	frames := make(chan blokusdto.Frame, 32)
	c.OnFrame(func(f blokusdto.Frame) { frames <- f })

	var mu sync.Mutex
	var states []State
	c.OnStateChange(func(s State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if c.State() != StateConnected {
		t.Fatalf("state = %s", c.State())
	}
	if err := c.Send(ctx, blokusdto.TypeCreateRoom, "1", blokusdto.CreateRoom{Name: "alice"}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	for {
		select {
		case f := <-frames:
			if f.T != blokusdto.TypeRoomCreated {
				continue
			}
			var s blokusdto.Seated
			if err := f.Decode(&s); err != nil || s.RoomID == "" {
				t.Fatalf("room_created = %+v err=%v", s, err)
			}
			if err := c.Close(ctx); err != nil {
				t.Fatalf("Close: %v", err)
			}
			if err := c.Send(ctx, blokusdto.TypePing, "", nil); err != ErrNotConnected {
				t.Fatalf("Send after close = %v", err)
			}
			mu.Lock()
			defer mu.Unlock()
			if len(states) < 2 || states[0] != StateConnecting || states[1] != StateConnected {
				t.Fatalf("states = %v", states)
			}
			return
		case <-ctx.Done():
			t.Fatalf("no room_created frame")
		}
	}
}

func TestConnectFailureWithoutRetries(t *testing.T) {
	c := New("ws://127.0.0.1:1/ws", 0)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Connect(ctx); err == nil {
		t.Fatalf("expected dial error")
	}
	if c.State() != StateFailed {
		t.Fatalf("state = %s", c.State())
	}
}
