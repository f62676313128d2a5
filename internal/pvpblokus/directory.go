package pvpblokus

import (
    "fmt"
    "sort"
    "strings"
    "sync"

    "github.com/google/uuid"
    "github.com/park285/Cheese-Blokus/internal/blokus"
    "github.com/park285/Cheese-Blokus/internal/obslog"
    "go.uber.org/zap"
)

// Directory owns every room of the process. Rooms are never evicted.
type Directory struct {
    mu    sync.RWMutex
    rooms map[string]*Session

    size     int
    maxRooms int
    sink     Sink
    newID    func() (string, error)
}

type Option func(*Directory)

// WithSink routes every room event to s.
func WithSink(s Sink) Option { return func(d *Directory) { d.sink = s } }

// WithMaxRooms caps how many rooms may exist. 0 means no cap.
func WithMaxRooms(n int) Option { return func(d *Directory) { if n > 0 { d.maxRooms = n } } }

// WithBoardSize overrides the board dimension used for new rooms.
func WithBoardSize(n int) Option { return func(d *Directory) { if n > 0 { d.size = n } } }

func withIDGen(f func() (string, error)) Option { return func(d *Directory) { d.newID = f } }

func NewDirectory(opts ...Option) *Directory {
    d := &Directory{
        rooms: make(map[string]*Session),
        size:  blokus.DefaultSize,
        sink:  nopSink{},
        newID: roomCode,
    }
    for _, o := range opts { o(d) }
    return d
}

// roomCode returns the first six characters of a random UUID.
func roomCode() (string, error) {
    u, err := uuid.NewRandom()
    if err != nil { return "", err }
    return u.String()[:6], nil
}

// Create opens a room and seats name in seat 0.
func (d *Directory) Create(name string, ep EndpointID) (*Session, JoinResult, error) {
    if strings.TrimSpace(name) == "" { return nil, JoinResult{}, ErrNameRequired }

    d.mu.Lock()
    if d.maxRooms > 0 && len(d.rooms) >= d.maxRooms {
        d.mu.Unlock()
        return nil, JoinResult{}, ErrTooManyRooms
    }
    var s *Session
    for i := 0; i < 5 && s == nil; i++ {
        id, err := d.newID()
        if err != nil {
            d.mu.Unlock()
            return nil, JoinResult{}, err
        }
        if _, exists := d.rooms[id]; exists { continue }
        s = newSession(id, d.size, d.sink)
        d.rooms[id] = s
    }
    d.mu.Unlock()
    if s == nil { return nil, JoinResult{}, fmt.Errorf("failed to allocate room id") }

    obslog.L().Info("room_create", zap.String("room_id", s.ID()), zap.String("name", strings.TrimSpace(name)))
    res, err := s.join(name, "", ep, true)
    if err != nil { return nil, JoinResult{}, err }
    return s, res, nil
}

// Lookup returns the room with id, reporting whether it exists.
func (d *Directory) Lookup(id string) (*Session, bool) {
    d.mu.RLock()
    defer d.mu.RUnlock()
    s, ok := d.rooms[strings.TrimSpace(id)]
    return s, ok
}

// Get is Lookup with ErrRoomNotFound for a missing room.
func (d *Directory) Get(id string) (*Session, error) {
    s, ok := d.Lookup(id)
    if !ok { return nil, ErrRoomNotFound }
    return s, nil
}

// Join seats or reconnects name in room id.
func (d *Directory) Join(id, name, token string, ep EndpointID) (*Session, JoinResult, error) {
    s, err := d.Get(id)
    if err != nil { return nil, JoinResult{}, err }
    res, err := s.Join(name, token, ep)
    if err != nil { return nil, JoinResult{}, err }
    return s, res, nil
}

// List summarizes every room, ordered by id.
func (d *Directory) List() []Summary {
    d.mu.RLock()
    sessions := make([]*Session, 0, len(d.rooms))
    for _, s := range d.rooms { sessions = append(sessions, s) }
    d.mu.RUnlock()

    out := make([]Summary, 0, len(sessions))
    for _, s := range sessions { out = append(out, s.summary()) }
    sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
    return out
}

func (d *Directory) Len() int {
    d.mu.RLock()
    defer d.mu.RUnlock()
    return len(d.rooms)
}
