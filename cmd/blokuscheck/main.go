package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/park285/Cheese-Blokus/internal/blokus"
	"github.com/park285/Cheese-Blokus/internal/wsclient"
	"github.com/park285/Cheese-Blokus/pkg/blokusdto"
)

// blokuscheck connects two players to a running server and plays one opening move each.
func main() {
	wsURL := os.Getenv("BLOKUS_WS_URL")
	if wsURL == "" {
		wsURL = "ws://localhost:3001/ws"
	}

	roomCh := make(chan string, 1)
	done := make(chan struct{}, 2)

	alice := player(wsURL, "alice", blokus.StartCorner(blokus.DefaultSize, 0), roomCh, done)
	bob := player(wsURL, "bob", blokus.StartCorner(blokus.DefaultSize, 1), nil, done)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := alice.Connect(ctx); err != nil {
		log.Fatalf("alice connect error: %v", err)
	}
	defer func() { _ = alice.Close(context.Background()) }()
	if err := alice.Send(ctx, blokusdto.TypeCreateRoom, "create", blokusdto.CreateRoom{Name: "alice"}); err != nil {
		log.Fatalf("create_room error: %v", err)
	}

	var roomID string
	select {
	case roomID = <-roomCh:
	case <-ctx.Done():
		log.Fatal("no room_created within timeout")
	}
	log.Printf("room created: %s", roomID)

	if err := bob.Connect(ctx); err != nil {
		log.Fatalf("bob connect error: %v", err)
	}
	defer func() { _ = bob.Close(context.Background()) }()
	if err := bob.Send(ctx, blokusdto.TypeJoinRoom, "join", blokusdto.JoinRoom{RoomID: roomID, Name: "bob"}); err != nil {
		log.Fatalf("join_room error: %v", err)
	}

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-ctx.Done():
			log.Fatal("opening moves did not complete")
		}
	}
	// Let the last broadcasts arrive
	time.Sleep(500 * time.Millisecond)
	log.Println("ok")
}

// player places a monomino on its start corner on the first your_turn it sees.
func player(wsURL, name string, corner blokus.Cell, roomCh chan<- string, done chan<- struct{}) *wsclient.Client {
	c := wsclient.New(wsURL, 0)
	c.OnStateChange(func(state wsclient.State) {
		log.Printf("[%s] WS state: %s", name, state)
	})

	var (
		mu     sync.Mutex
		roomID string
		moved  bool
	)
	c.OnFrame(func(f blokusdto.Frame) {
		fmt.Printf("[%s] %s %s\n", name, f.T, string(f.M))
		switch f.T {
		case blokusdto.TypeRoomCreated, blokusdto.TypeJoined:
			var s blokusdto.Seated
			if err := f.Decode(&s); err != nil {
				log.Printf("[%s] bad seated frame: %v", name, err)
				return
			}
			mu.Lock()
			roomID = s.RoomID
			mu.Unlock()
			if roomCh != nil && f.T == blokusdto.TypeRoomCreated {
				roomCh <- s.RoomID
			}
		case blokusdto.TypeYourTurn:
			mu.Lock()
			if moved {
				mu.Unlock()
				return
			}
			moved = true
			id := roomID
			mu.Unlock()
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				err := c.Send(ctx, blokusdto.TypePlaceMove, "move", blokusdto.PlaceMove{
					RoomID:     id,
					PieceIndex: 0,
					Reflection: string(blokus.ReflectNone),
					Row:        corner.Row,
					Col:        corner.Col,
				})
				if err != nil {
					log.Printf("[%s] place_move error: %v", name, err)
				}
				done <- struct{}{}
			}()
		case blokusdto.TypeError:
			var e blokusdto.Error
			_ = f.Decode(&e)
			log.Printf("[%s] error %s: %s", name, e.Code, e.Message)
		}
	})
	return c
}
