package pvpblokus

import (
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/park285/Cheese-Blokus/internal/blokus"
    "github.com/park285/Cheese-Blokus/internal/obslog"
    "go.uber.org/zap"
)

// Session is one two-player room. Every exported method takes the session lock,
// so intents against the same room are evaluated one at a time.
type Session struct {
    mu sync.Mutex

    id       string
    size     int
    state    State
    board    *blokus.Board
    players  [2]*Player
    count    int
    turn     int
    lastMove []blokus.Cell
    moves    int
    result   *Result

    startedAt time.Time

    sink Sink
    now  func() time.Time
}

func newSession(id string, size int, sink Sink) *Session {
    if sink == nil { sink = nopSink{} }
    return &Session{
        id:        id,
        size:      size,
        state:     StateEmpty,
        board:     blokus.NewBoard(size),
        sink:      sink,
        now:       time.Now,
    }
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.state
}

// Join seats a new player or reconnects an existing one.
// A matching token always reconnects. Without one, a known name reconnects only
// when that player has no live endpoint.
func (s *Session) Join(name, token string, ep EndpointID) (JoinResult, error) {
    return s.join(name, token, ep, false)
}

func (s *Session) join(name, token string, ep EndpointID, created bool) (JoinResult, error) {
    name = strings.TrimSpace(name)
    token = strings.TrimSpace(token)

    s.mu.Lock()
    defer s.mu.Unlock()

    if token != "" {
        if p := s.playerByToken(token); p != nil {
            if s.boundElsewhere(p, ep) { return JoinResult{}, ErrAlreadySeated }
            return s.reconnect(p, ep), nil
        }
    }
    if name == "" { return JoinResult{}, ErrNameRequired }
    if p := s.playerByName(name); p != nil {
        if p.connected() && p.Endpoint != ep { return JoinResult{}, ErrNameTaken }
        if s.boundElsewhere(p, ep) { return JoinResult{}, ErrAlreadySeated }
        return s.reconnect(p, ep), nil
    }
    if s.count >= len(s.players) { return JoinResult{}, ErrRoomFull }
    if s.playerByEndpoint(ep) != nil { return JoinResult{}, ErrAlreadySeated }

    seat := s.count
    p := &Player{
        Name:     name,
        Color:    SeatColor(seat),
        Seat:     seat,
        Token:    uuid.NewString(),
        Endpoint: ep,
    }
    s.players[seat] = p
    s.count++
    if s.count == 1 {
        s.state = StateWaiting
    } else {
        s.state = StateActive
        s.turn = 0
        s.startedAt = s.now()
    }
    obslog.L().Info("room_join", zap.String("room_id", s.id), zap.String("name", name), zap.Int("seat", seat), zap.String("state", string(s.state)))

    res := JoinResult{RoomID: s.id, Token: p.Token, Seat: seat, Created: created}
    s.emit(EventSeated, res, ep)
    s.emitRoster()
    s.emitSnapshotTo(p)
    if s.state == StateActive {
        s.emitTurn()
    }
    return res, nil
}

func (s *Session) reconnect(p *Player, ep EndpointID) JoinResult {
    p.Endpoint = ep
    obslog.L().Info("room_reconnect", zap.String("room_id", s.id), zap.String("name", p.Name), zap.Int("seat", p.Seat))
    res := JoinResult{RoomID: s.id, Token: p.Token, Seat: p.Seat, Reconnected: true}
    s.emit(EventSeated, res, ep)
    s.emitRoster()
    s.emitSnapshotTo(p)
    switch s.state {
    case StateActive:
        s.emitTurnTo(p)
    case StateEnded:
        s.emitReplay(EventGameOver, s.result.clone(), p.Endpoint)
    }
    return res
}

// Disconnect unbinds ep from its player. The seat, pieces and turn are kept.
// It reports whether ep was seated here.
func (s *Session) Disconnect(ep EndpointID) bool {
    if ep == "" { return false }
    s.mu.Lock()
    defer s.mu.Unlock()
    p := s.playerByEndpoint(ep)
    if p == nil { return false }
    p.Endpoint = ""
    s.emitRoster()
    return true
}

// Place applies a placement by the player bound to ep. Rejections leave the session untouched.
func (s *Session) Place(ep EndpointID, req PlaceRequest) error {
    s.mu.Lock()
    defer s.mu.Unlock()

    p, shape, err := s.checkPlace(ep, req)
    if err != nil {
        obslog.L().Info("blokus_move_rejected", zap.String("room_id", s.id), zap.String("endpoint", string(ep)), zap.Int("piece", req.Piece), zap.Error(err))
        return err
    }

    cells := blokus.Cells(shape, req.Row, req.Col)
    s.board.Place(blokus.SeatOwner(p.Seat), cells)
    p.Used = p.Used.With(req.Piece)
    s.lastMove = cells
    s.moves++
    obslog.L().Info("blokus_move", zap.String("room_id", s.id), zap.String("name", p.Name), zap.Int("piece", req.Piece), zap.Int("rotation", int(req.Rotation)), zap.String("reflection", string(req.Reflection)), zap.Int("row", req.Row), zap.Int("col", req.Col))

    s.emitBoard(s.endpoints()...)
    s.emitUsed(p)

    other := s.players[1-p.Seat]
    switch {
    case blokus.HasAnyLegalMove(s.board, s.seatOf(other)):
        s.turn = other.Seat
    case blokus.HasAnyLegalMove(s.board, s.seatOf(p)):
        s.turn = p.Seat
    default:
        s.finish()
        return nil
    }
    s.emitTurn()
    return nil
}

func (s *Session) checkPlace(ep EndpointID, req PlaceRequest) (*Player, blokus.Shape, error) {
    switch s.state {
    case StateEnded:
        return nil, nil, ErrGameOver
    case StateActive:
    default:
        return nil, nil, ErrGameNotActive
    }
    p := s.playerByEndpoint(ep)
    if p == nil { return nil, nil, ErrNotSeated }
    if p.Seat != s.turn { return nil, nil, ErrNotYourTurn }
    piece, ok := blokus.PieceAt(req.Piece)
    if !ok { return nil, nil, ErrInvalidPiece }
    if !req.Rotation.Valid() { return nil, nil, ErrInvalidTransform }
    ref, ok := blokus.ParseReflection(string(req.Reflection))
    if !ok { return nil, nil, ErrInvalidTransform }
    if p.Used.Has(req.Piece) { return nil, nil, ErrPieceAlreadyUsed }
    shape := blokus.Transform(piece, req.Rotation, ref)
    if v := blokus.Check(s.board, s.seatOf(p), shape, req.Row, req.Col); v != blokus.ViolationNone {
        return nil, nil, &PlacementError{Violation: v}
    }
    return p, shape, nil
}

// Hint returns one legal placement for the player bound to ep, if any exists.
func (s *Session) Hint(ep EndpointID) (blokus.Move, bool, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    switch s.state {
    case StateEnded:
        return blokus.Move{}, false, ErrGameOver
    case StateActive:
    default:
        return blokus.Move{}, false, ErrGameNotActive
    }
    p := s.playerByEndpoint(ep)
    if p == nil { return blokus.Move{}, false, ErrNotSeated }
    m, ok := blokus.FindLegalMove(s.board, s.seatOf(p))
    return m, ok, nil
}

// Snapshot returns a copy of the observable state.
func (s *Session) Snapshot() View {
    s.mu.Lock()
    defer s.mu.Unlock()
    v := View{
        RoomID:   s.id,
        State:    s.state,
        Size:     s.size,
        Players:  s.roster(),
        Board:    s.board.Snapshot(),
        LastMove: append([]blokus.Cell(nil), s.lastMove...),
        Turn:     s.turn,
    }
    if s.result != nil { v.Result = s.result.clone() }
    return v
}

func (s *Session) summary() Summary {
    s.mu.Lock()
    defer s.mu.Unlock()
    out := Summary{RoomID: s.id, State: s.state}
    for _, p := range s.seated() {
        out.Players = append(out.Players, p.Name)
    }
    return out
}

func (s *Session) finish() {
    r := &Result{RoomID: s.id, Moves: s.moves, StartedAt: s.startedAt, EndedAt: s.now()}
    best := -1
    tied := false
    for _, p := range s.seated() {
        sc := blokus.UnusedCells(p.Used)
        r.Scores = append(r.Scores, Score{Name: p.Name, Seat: p.Seat, Score: sc})
        switch {
        case best < 0 || sc < best:
            best, tied, r.Winner = sc, false, p.Name
        case sc == best:
            tied = true
        }
    }
    if tied { r.Winner = "" }
    s.result = r
    s.state = StateEnded
    obslog.L().Info("blokus_game_over", zap.String("room_id", s.id), zap.Int("moves", s.moves), zap.String("winner", r.Winner), zap.Any("scores", r.Scores))
    s.emit(EventGameOver, r.clone(), s.endpoints()...)
}

func (r *Result) clone() *Result {
    if r == nil { return nil }
    c := *r
    c.Scores = append([]Score(nil), r.Scores...)
    return &c
}

// ---- emission helpers; callers hold s.mu ----

func (s *Session) emit(kind EventKind, payload any, to ...EndpointID) {
    s.sink.Deliver(Event{Kind: kind, RoomID: s.id, To: to, Payload: payload})
}

func (s *Session) emitReplay(kind EventKind, payload any, ep EndpointID) {
    s.sink.Deliver(Event{Kind: kind, RoomID: s.id, To: []EndpointID{ep}, Payload: payload, Replay: true})
}

func (s *Session) emitRoster() {
    to := s.endpoints()
    colors := Colors{}
    for _, p := range s.seated() {
        colors[p.Name] = p.Color
    }
    s.emit(EventPlayerList, Roster(s.roster()), to...)
    s.emit(EventPlayerColors, colors, to...)
}

func (s *Session) emitBoard(to ...EndpointID) {
    grid := s.board.Snapshot()
    names := make([][]string, len(grid))
    for r, row := range grid {
        names[r] = make([]string, len(row))
        for c, o := range row {
            if o == blokus.NoOwner { continue }
            if p := s.players[o.Seat()]; p != nil { names[r][c] = p.Name }
        }
    }
    s.emit(EventBoard, BoardUpdate{Board: names, LastMove: append([]blokus.Cell(nil), s.lastMove...)}, to...)
}

// emitUsed tells p its own used pieces and its opponent the same list.
func (s *Session) emitUsed(p *Player) {
    used := p.Used.Indices()
    if p.connected() { s.emit(EventUsedPieces, UsedPieces(used), p.Endpoint) }
    if o := s.opponent(p); o != nil && o.connected() {
        s.emit(EventOpponentUsed, UsedPieces(append([]int(nil), used...)), o.Endpoint)
    }
}

// emitSnapshotTo brings a freshly bound endpoint up to date.
func (s *Session) emitSnapshotTo(p *Player) {
    if !p.connected() { return }
    s.emitBoard(p.Endpoint)
    s.emit(EventUsedPieces, UsedPieces(p.Used.Indices()), p.Endpoint)
    if o := s.opponent(p); o != nil {
        s.emit(EventOpponentUsed, UsedPieces(o.Used.Indices()), p.Endpoint)
    }
}

func (s *Session) emitTurn() {
    for _, p := range s.seated() {
        s.emitTurnTo(p)
    }
}

func (s *Session) emitTurnTo(p *Player) {
    if !p.connected() { return }
    if p.Seat == s.turn {
        s.emit(EventYourTurn, nil, p.Endpoint)
    } else {
        s.emit(EventWaitTurn, nil, p.Endpoint)
    }
}

// ---- lookups; callers hold s.mu ----

func (s *Session) seated() []*Player {
    out := make([]*Player, 0, s.count)
    for _, p := range s.players {
        if p != nil { out = append(out, p) }
    }
    return out
}

func (s *Session) endpoints() []EndpointID {
    var out []EndpointID
    for _, p := range s.seated() {
        if p.connected() { out = append(out, p.Endpoint) }
    }
    return out
}

func (s *Session) roster() []PlayerView {
    out := make([]PlayerView, 0, s.count)
    for _, p := range s.seated() {
        out = append(out, PlayerView{Name: p.Name, Color: p.Color, Seat: p.Seat, Connected: p.connected(), Used: p.Used.Indices()})
    }
    return out
}

func (s *Session) opponent(p *Player) *Player { return s.players[1-p.Seat] }

func (s *Session) seatOf(p *Player) blokus.Seat {
    seat := blokus.NewSeat(p.Seat, s.size)
    seat.Used = p.Used
    return seat
}

func (s *Session) playerByName(name string) *Player {
    for _, p := range s.seated() {
        if p.Name == name { return p }
    }
    return nil
}

func (s *Session) playerByToken(token string) *Player {
    for _, p := range s.seated() {
        if p.Token == token { return p }
    }
    return nil
}

// boundElsewhere reports whether ep already plays a seat other than p's.
func (s *Session) boundElsewhere(p *Player, ep EndpointID) bool {
    other := s.playerByEndpoint(ep)
    return other != nil && other != p
}

func (s *Session) playerByEndpoint(ep EndpointID) *Player {
    if ep == "" { return nil }
    for _, p := range s.seated() {
        if p.Endpoint == ep { return p }
    }
    return nil
}
