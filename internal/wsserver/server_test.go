package wsserver

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/park285/Cheese-Blokus/internal/adapter/blokuspresenter"
	"github.com/park285/Cheese-Blokus/internal/msgcat"
	"github.com/park285/Cheese-Blokus/internal/pvpblokus"
	"github.com/park285/Cheese-Blokus/internal/render"
	"github.com/park285/Cheese-Blokus/pkg/blokusdto"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	p := blokuspresenter.NewPresenter(cat)
	hub := NewHub(p)
	dir := pvpblokus.NewDirectory(pvpblokus.WithSink(hub))
	srv := New(hub, dir, p, render.NewPNGRenderer(16), Options{AllowedOrigins: []string{"http://ok.test"}})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

type testConn struct {
	t    *testing.T
	conn *websocket.Conn
}

func dial(t *testing.T, ts *httptest.Server) *testConn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(websocket.StatusNormalClosure, "") })
	return &testConn{t: t, conn: c}
}

func (tc *testConn) send(typ string, payload any) {
	tc.t.Helper()
	f, err := blokusdto.NewFrame(typ, "req-"+typ, payload)
	if err != nil {
		tc.t.Fatalf("NewFrame: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wsjson.Write(ctx, tc.conn, f); err != nil {
		tc.t.Fatalf("write %s: %v", typ, err)
	}
}

// expect reads frames until one of type typ arrives.
func (tc *testConn) expect(typ string) blokusdto.Frame {
	tc.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		var f blokusdto.Frame
		if err := wsjson.Read(ctx, tc.conn, &f); err != nil {
			tc.t.Fatalf("waiting for %s: %v", typ, err)
		}
		if f.T == typ {
			return f
		}
	}
}

func (tc *testConn) expectError(code string) {
	tc.t.Helper()
	var e blokusdto.Error
	if err := tc.expect(blokusdto.TypeError).Decode(&e); err != nil {
		tc.t.Fatalf("decode error frame: %v", err)
	}
	if e.Code != code {
		tc.t.Fatalf("error code = %q (%s), want %q", e.Code, e.Message, code)
	}
}

func TestTwoPlayerGameOverWebsocket(t *testing.T) {
	ts := newTestServer(t)
	alice := dial(t, ts)
	bob := dial(t, ts)

	alice.send(blokusdto.TypeCreateRoom, blokusdto.CreateRoom{Name: "alice"})
	var created blokusdto.Seated
	if err := alice.expect(blokusdto.TypeRoomCreated).Decode(&created); err != nil {
		t.Fatalf("decode room_created: %v", err)
	}
	if len(created.RoomID) != 6 || created.Token == "" || created.Seat != 0 || created.Color != "blue" {
		t.Fatalf("unexpected room_created %+v", created)
	}

	bob.send(blokusdto.TypeJoinRoom, blokusdto.JoinRoom{RoomID: created.RoomID, Name: "bob"})
	var joined blokusdto.Seated
	if err := bob.expect(blokusdto.TypeJoined).Decode(&joined); err != nil {
		t.Fatalf("decode joined: %v", err)
	}
	if joined.Seat != 1 || joined.Color != "orange" {
		t.Fatalf("unexpected joined %+v", joined)
	}
	alice.expect(blokusdto.TypeYourTurn)
	bob.expect(blokusdto.TypeWaitTurn)

	bob.send(blokusdto.TypePlaceMove, blokusdto.PlaceMove{RoomID: created.RoomID, PieceIndex: 0, Row: 9, Col: 9})
	bob.expectError("not_your_turn")

	alice.send(blokusdto.TypePlaceMove, blokusdto.PlaceMove{RoomID: created.RoomID, PieceIndex: 0, Reflection: "none", Row: 4, Col: 4})
	var board blokusdto.UpdateBoard
	if err := bob.expect(blokusdto.TypeUpdateBoard).Decode(&board); err != nil {
		t.Fatalf("decode update_board: %v", err)
	}
	if board.Board[4][4] != "alice" || len(board.LastMove) != 1 {
		t.Fatalf("unexpected board update %+v", board.LastMove)
	}
	var opp []int
	if err := bob.expect(blokusdto.TypeOpponentUsedPieces).Decode(&opp); err != nil || len(opp) != 1 || opp[0] != 0 {
		t.Fatalf("opponent used = %v err=%v", opp, err)
	}
	bob.expect(blokusdto.TypeYourTurn)

	bob.send(blokusdto.TypePlaceMove, blokusdto.PlaceMove{RoomID: created.RoomID, PieceIndex: 0, Row: 0, Col: 0})
	bob.expectError("invalid_placement")

	bob.send(blokusdto.TypeHint, blokusdto.HintRequest{RoomID: created.RoomID})
	var h blokusdto.Hint
	if err := bob.expect(blokusdto.TypeHint).Decode(&h); err != nil || !h.Found {
		t.Fatalf("hint = %+v err=%v", h, err)
	}

	alice.send(blokusdto.TypeJoinRoom, blokusdto.JoinRoom{RoomID: "zzzzzz", Name: "alice"})
	alice.expectError("room_not_found")

	// rooms listing and board image
	resp, err := http.Get(ts.URL + "/rooms")
	if err != nil {
		t.Fatalf("GET /rooms: %v", err)
	}
	var rooms []blokusdto.RoomSummary
	_ = json.NewDecoder(resp.Body).Decode(&rooms)
	resp.Body.Close()
	if len(rooms) != 1 || rooms[0].State != "ACTIVE" || len(rooms[0].Players) != 2 {
		t.Fatalf("rooms = %+v", rooms)
	}

	resp, err = http.Get(ts.URL + "/rooms/" + created.RoomID + "/board.png")
	if err != nil {
		t.Fatalf("GET board.png: %v", err)
	}
	if resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("content type = %q", resp.Header.Get("Content-Type"))
	}
	if _, err := png.Decode(resp.Body); err != nil {
		t.Fatalf("board.png is not a png: %v", err)
	}
	resp.Body.Close()
}

func TestReconnectWithToken(t *testing.T) {
	ts := newTestServer(t)
	alice := dial(t, ts)
	bob := dial(t, ts)

	alice.send(blokusdto.TypeCreateRoom, blokusdto.CreateRoom{Name: "alice"})
	var created blokusdto.Seated
	_ = alice.expect(blokusdto.TypeRoomCreated).Decode(&created)
	bob.send(blokusdto.TypeJoinRoom, blokusdto.JoinRoom{RoomID: created.RoomID, Name: "bob"})
	bob.expect(blokusdto.TypeJoined)
	alice.expect(blokusdto.TypeYourTurn)

	_ = alice.conn.Close(websocket.StatusNormalClosure, "bye")

	var list []blokusdto.PlayerEntry
	for i := 0; i < 3; i++ {
		if err := bob.expect(blokusdto.TypePlayerList).Decode(&list); err != nil {
			t.Fatalf("decode player_list: %v", err)
		}
		if len(list) == 2 && !list[0].Connected {
			break
		}
	}
	if len(list) != 2 || list[0].Connected {
		t.Fatalf("alice should show as disconnected: %+v", list)
	}

	again := dial(t, ts)
	again.send(blokusdto.TypeJoinRoom, blokusdto.JoinRoom{RoomID: created.RoomID, Token: created.Token})
	var res blokusdto.Seated
	if err := again.expect(blokusdto.TypeJoined).Decode(&res); err != nil {
		t.Fatalf("decode joined: %v", err)
	}
	if !res.Reconnected || res.Seat != 0 {
		t.Fatalf("unexpected reconnect %+v", res)
	}
	again.expect(blokusdto.TypeYourTurn)
}

func TestBadFramesAndOrigin(t *testing.T) {
	ts := newTestServer(t)
	c := dial(t, ts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.conn.Write(ctx, websocket.MessageText, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	c.expectError("bad_request")

	c.send("teleport", nil)
	c.expectError("bad_request")

	c.send(blokusdto.TypePing, nil)
	if f := c.expect(blokusdto.TypePong); f.ID != "req-ping" {
		t.Fatalf("pong id = %q", f.ID)
	}

	c.send(blokusdto.TypeCreateRoom, blokusdto.CreateRoom{Name: " "})
	c.expectError("name_required")

	hdr := http.Header{}
	hdr.Set("Origin", "http://evil.test")
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	if _, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{HTTPHeader: hdr}); err == nil {
		t.Fatalf("expected forbidden origin")
	}

	resp, err := http.Get(ts.URL + "/rooms/nope/board.png")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
