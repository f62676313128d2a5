package wsserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/park285/Cheese-Blokus/internal/adapter/blokuspresenter"
	"github.com/park285/Cheese-Blokus/internal/obslog"
	"github.com/park285/Cheese-Blokus/internal/pvpblokus"
	"github.com/park285/Cheese-Blokus/internal/render"
	"github.com/park285/Cheese-Blokus/pkg/blokusdto"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

const maxFrameBytes = 16 << 10

type Options struct {
	AllowedOrigins []string
	PingInterval   time.Duration
	SendBuffer     int
}

// Server exposes the game over websocket plus a few read-only HTTP endpoints.
type Server struct {
	hub       *Hub
	dir       *pvpblokus.Directory
	presenter *blokuspresenter.Presenter
	renderer  render.BoardRenderer

	allowOrigins map[string]bool
	pingInterval time.Duration
	sendBuffer   int
}

func New(hub *Hub, dir *pvpblokus.Directory, p *blokuspresenter.Presenter, r render.BoardRenderer, opts Options) *Server {
	allow := map[string]bool{}
	for _, o := range opts.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			allow[o] = true
		}
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = 15 * time.Second
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 64
	}
	return &Server{
		hub:          hub,
		dir:          dir,
		presenter:    p,
		renderer:     r,
		allowOrigins: allow,
		pingInterval: opts.PingInterval,
		sendBuffer:   opts.SendBuffer,
	}
}

// Handler routes /ws, /health, /rooms and /rooms/{id}/board.png.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /rooms", s.handleRooms)
	mux.HandleFunc("GET /rooms/{id}/board.png", s.handleBoard)
	return mux
}

func (s *Server) originAllowed(origin string) bool {
	return origin == "" || len(s.allowOrigins) == 0 || s.allowOrigins[origin]
}

func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	if !s.originAllowed(r.Header.Get("Origin")) {
		http.Error(w, "forbidden origin", http.StatusForbidden)
		return
	}
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := newClient(pvpblokus.EndpointID(uuid.NewString()), s.sendBuffer)
	s.hub.register(c)
	obslog.L().Info("ws_connect", zap.String("endpoint", string(c.id)), zap.String("remote", r.RemoteAddr))

	writerDone := make(chan struct{})
	go s.writeLoop(ctx, conn, c, writerDone)

	conn.SetReadLimit(maxFrameBytes)
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var f blokusdto.Frame
		if typ != websocket.MessageText || json.Unmarshal(data, &f) != nil {
			s.reply(c, s.presenter.Error("", blokuspresenter.ErrBadRequest, nil))
			continue
		}
		s.dispatch(c, f)
	}

	for _, id := range c.roomIDs() {
		if sess, ok := s.dir.Lookup(id); ok {
			sess.Disconnect(c.id)
		}
	}
	s.hub.unregister(c)
	cancel()
	<-writerDone
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	obslog.L().Info("ws_disconnect", zap.String("endpoint", string(c.id)))
}

func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, c *client, done chan<- struct{}) {
	defer close(done)
	ping := time.NewTicker(s.pingInterval)
	defer ping.Stop()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			wctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err := conn.Write(wctx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				_ = conn.Close(websocket.StatusGoingAway, "write failed")
				return
			}
		case <-ping.C:
			pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			_ = conn.Ping(pctx)
			cancel()
		case <-c.kicked:
			_ = conn.Close(websocket.StatusPolicyViolation, "slow consumer")
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) reply(c *client, f blokusdto.Frame) {
	s.hub.Send(c.id, f)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "rooms": s.dir.Len(), "connections": s.hub.Len()})
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, blokuspresenter.ToDTOSummaries(s.dir.List()))
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.dir.Lookup(r.PathValue("id"))
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	v := sess.Snapshot()
	names := make([]string, len(v.Players))
	for i, p := range v.Players {
		names[i] = p.Name
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	img, err := s.renderer.RenderPNG(ctx, render.Board{
		Cells:    v.Board,
		LastMove: v.LastMove,
		Players:  names,
		Turn:     v.Turn,
		Ended:    v.State == pvpblokus.StateEnded,
	})
	if err != nil {
		obslog.L().Warn("board_render", zap.String("room_id", v.RoomID), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(img)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
