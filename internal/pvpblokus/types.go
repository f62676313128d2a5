package pvpblokus

import (
    "time"

    "github.com/park285/Cheese-Blokus/internal/blokus"
)

// State is the lifecycle of a room.
type State string

const (
    StateEmpty   State = "EMPTY"
    StateWaiting State = "WAITING"
    StateActive  State = "ACTIVE"
    StateEnded   State = "ENDED"
)

// EndpointID identifies one live transport connection. It changes on every reconnect.
type EndpointID string

// Seat colors, assigned by seat order.
const (
    ColorBlue   = "blue"
    ColorOrange = "orange"
)

var seatColors = [2]string{ColorBlue, ColorOrange}

// SeatColor returns the color bound to a seat index.
func SeatColor(seat int) string {
    if seat < 0 || seat >= len(seatColors) { return "" }
    return seatColors[seat]
}

// Player is one seat of a room. Name is display identity, Token is the reconnect credential.
type Player struct {
    Name     string
    Color    string
    Seat     int
    Token    string
    Endpoint EndpointID
    Used     blokus.PieceSet
}

func (p *Player) connected() bool { return p.Endpoint != "" }

// PlaceRequest is a placement intent. Row and Col are the 0-based anchor.
type PlaceRequest struct {
    Piece      int
    Rotation   blokus.Rotation
    Reflection blokus.Reflection
    Row        int
    Col        int
}

// JoinResult is returned to the endpoint that created or joined a room.
type JoinResult struct {
    RoomID      string
    Token       string
    Seat        int
    Created     bool
    Reconnected bool
}

// Score is one scoreboard line. Lower is better.
type Score struct {
    Name  string `json:"name"`
    Seat  int    `json:"seat"`
    Score int    `json:"score"`
}

// Result is the final record of an ended room.
type Result struct {
    RoomID    string    `json:"room_id"`
    Scores    []Score   `json:"scores"`
    Winner    string    `json:"winner,omitempty"`
    Moves     int       `json:"moves"`
    StartedAt time.Time `json:"started_at"`
    EndedAt   time.Time `json:"ended_at"`
}

// PlayerView is the read-only roster entry exposed outside a session.
type PlayerView struct {
    Name      string          `json:"name"`
    Color     string          `json:"color"`
    Seat      int             `json:"seat"`
    Connected bool            `json:"connected"`
    Used      []int           `json:"used"`
}

// View is an immutable copy of a session's observable state.
type View struct {
    RoomID   string           `json:"room_id"`
    State    State            `json:"state"`
    Size     int              `json:"size"`
    Players  []PlayerView     `json:"players"`
    Board    [][]blokus.Owner `json:"board"`
    LastMove []blokus.Cell    `json:"last_move"`
    Turn     int              `json:"turn"`
    Result   *Result          `json:"result,omitempty"`
}

// Summary is a directory listing entry.
type Summary struct {
    RoomID  string   `json:"roomId"`
    State   State    `json:"state"`
    Players []string `json:"players"`
}
