package blokuspresenter

import (
	"errors"
	"fmt"

	"github.com/park285/Cheese-Blokus/internal/blokus"
	"github.com/park285/Cheese-Blokus/internal/msgcat"
	"github.com/park285/Cheese-Blokus/internal/pvpblokus"
	"github.com/park285/Cheese-Blokus/pkg/blokusdto"
)

// Presenter turns session events, join results and errors into wire frames.
// Player-facing text comes from the message catalog; a nil catalog yields the Go error text.
type Presenter struct {
	cat *msgcat.Catalog
}

func NewPresenter(cat *msgcat.Catalog) *Presenter {
	return &Presenter{cat: cat}
}

// Event converts a session event. Request ids are not carried by broadcast events.
func (p *Presenter) Event(ev pvpblokus.Event) (blokusdto.Frame, error) {
	switch ev.Kind {
	case pvpblokus.EventSeated:
		res, _ := ev.Payload.(pvpblokus.JoinResult)
		t := blokusdto.TypeJoined
		if res.Created {
			t = blokusdto.TypeRoomCreated
		}
		return p.Seated(t, "", res)
	case pvpblokus.EventPlayerList:
		r, _ := ev.Payload.(pvpblokus.Roster)
		return blokusdto.NewFrame(blokusdto.TypePlayerList, "", ToDTOPlayers(r))
	case pvpblokus.EventPlayerColors:
		c, _ := ev.Payload.(pvpblokus.Colors)
		return blokusdto.NewFrame(blokusdto.TypePlayerColors, "", map[string]string(c))
	case pvpblokus.EventBoard:
		b, _ := ev.Payload.(pvpblokus.BoardUpdate)
		return blokusdto.NewFrame(blokusdto.TypeUpdateBoard, "", ToDTOBoard(b))
	case pvpblokus.EventUsedPieces:
		u, _ := ev.Payload.(pvpblokus.UsedPieces)
		return blokusdto.NewFrame(blokusdto.TypeUpdateUsedPieces, "", usedList(u))
	case pvpblokus.EventOpponentUsed:
		u, _ := ev.Payload.(pvpblokus.UsedPieces)
		return blokusdto.NewFrame(blokusdto.TypeOpponentUsedPieces, "", usedList(u))
	case pvpblokus.EventYourTurn:
		return blokusdto.NewFrame(blokusdto.TypeYourTurn, "", nil)
	case pvpblokus.EventWaitTurn:
		return blokusdto.NewFrame(blokusdto.TypeWaitTurn, "", nil)
	case pvpblokus.EventGameOver:
		r, _ := ev.Payload.(*pvpblokus.Result)
		return blokusdto.NewFrame(blokusdto.TypeGameOver, "", p.gameOver(r))
	default:
		return blokusdto.Frame{}, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

func usedList(u pvpblokus.UsedPieces) []int {
	return append([]int{}, u...)
}

func (p *Presenter) gameOver(r *pvpblokus.Result) blokusdto.GameOver {
	out := blokusdto.GameOver{Scores: ToDTOScores(r)}
	if r == nil {
		return out
	}
	out.Winner = r.Winner
	if r.Winner != "" {
		out.Text = p.cat.Text("game_over.winner", map[string]any{"Winner": r.Winner}, r.Winner+" wins.")
	} else {
		out.Text = p.cat.Text("game_over.draw", nil, "Draw.")
	}
	return out
}

// Seated answers a create (room_created) or join (joined) intent.
func (p *Presenter) Seated(t, id string, res pvpblokus.JoinResult) (blokusdto.Frame, error) {
	return blokusdto.NewFrame(t, id, blokusdto.Seated{
		RoomID:      res.RoomID,
		Token:       res.Token,
		Seat:        res.Seat,
		Color:       pvpblokus.SeatColor(res.Seat),
		Reconnected: res.Reconnected,
	})
}

// Hint answers a hint intent.
func (p *Presenter) Hint(id string, m blokus.Move, found bool) (blokusdto.Frame, error) {
	h := blokusdto.Hint{Found: found}
	if found {
		h.PieceIndex, h.Rotation, h.Reflection, h.Row, h.Col = m.Piece, int(m.Rotation), string(m.Reflection), m.Row, m.Col
		h.Text = p.cat.Text("hint.found", m, "")
	} else {
		h.Text = p.cat.Text("hint.none", nil, "")
	}
	return blokusdto.NewFrame(blokusdto.TypeHint, id, h)
}

// Error builds the rejection frame for the actor. data feeds the message template.
func (p *Presenter) Error(id string, err error, data map[string]any) blokusdto.Frame {
	code := ErrorCode(err)
	key := "error." + code
	var pe *pvpblokus.PlacementError
	if errors.As(err, &pe) {
		key = "error.placement." + pe.Violation.String()
	}
	fallback := "internal error"
	if err != nil && code != "internal" {
		fallback = err.Error()
	}
	f, mErr := blokusdto.NewFrame(blokusdto.TypeError, id, blokusdto.Error{Code: code, Message: p.cat.Text(key, data, fallback)})
	if mErr != nil {
		return blokusdto.Frame{T: blokusdto.TypeError, ID: id}
	}
	return f
}
