package pvpblokus

import "github.com/park285/Cheese-Blokus/internal/blokus"

// EventKind names an outbound room event.
type EventKind string

const (
    // EventSeated goes to the joining endpoint before any other event of that join.
    EventSeated       EventKind = "seated"
    EventPlayerList   EventKind = "player_list"
    EventPlayerColors EventKind = "player_colors"
    EventBoard        EventKind = "update_board"
    EventUsedPieces   EventKind = "update_used_pieces"
    EventOpponentUsed EventKind = "opponent_used_pieces"
    EventYourTurn     EventKind = "your_turn"
    EventWaitTurn     EventKind = "wait_turn"
    EventGameOver     EventKind = "game_over"
)

// Event is one outbound notification addressed to specific endpoints of a room.
// Payload values are copies; receivers may keep them.
// Replay marks an event resent to a reconnecting endpoint; the room state did not change.
type Event struct {
    Kind    EventKind
    RoomID  string
    To      []EndpointID
    Payload any
    Replay  bool
}

// Payload types.
type (
    Roster []PlayerView

    // Colors maps player name to seat color.
    Colors map[string]string

    BoardUpdate struct {
        // Board holds the owning player's name per cell, "" when empty.
        Board    [][]string    `json:"board"`
        LastMove []blokus.Cell `json:"lastMove"`
    }

    UsedPieces []int
)

// Sink receives room events. Sessions call Deliver while holding their lock,
// so implementations must not block and must not call back into the session.
type Sink interface {
    Deliver(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Deliver(ev Event) { f(ev) }

// MultiSink fans out to several sinks in order. Nil entries are skipped.
type MultiSink []Sink

func (m MultiSink) Deliver(ev Event) {
    for _, s := range m {
        if s != nil { s.Deliver(ev) }
    }
}

type nopSink struct{}

func (nopSink) Deliver(Event) {}
