package blokuspresenter

import (
	"github.com/park285/Cheese-Blokus/internal/blokus"
	"github.com/park285/Cheese-Blokus/internal/pvpblokus"
	"github.com/park285/Cheese-Blokus/pkg/blokusdto"
)

func ToDTOPlayers(r pvpblokus.Roster) []blokusdto.PlayerEntry {
	out := make([]blokusdto.PlayerEntry, 0, len(r))
	for _, p := range r {
		out = append(out, blokusdto.PlayerEntry{Name: p.Name, Color: p.Color, Seat: p.Seat, Connected: p.Connected})
	}
	return out
}

func ToDTOCells(cells []blokus.Cell) []blokusdto.Cell {
	out := make([]blokusdto.Cell, 0, len(cells))
	for _, c := range cells {
		out = append(out, blokusdto.Cell{Row: c.Row, Col: c.Col})
	}
	return out
}

func ToDTOBoard(b pvpblokus.BoardUpdate) blokusdto.UpdateBoard {
	return blokusdto.UpdateBoard{Board: b.Board, LastMove: ToDTOCells(b.LastMove)}
}

func ToDTOScores(r *pvpblokus.Result) []blokusdto.ScoreEntry {
	if r == nil {
		return nil
	}
	out := make([]blokusdto.ScoreEntry, 0, len(r.Scores))
	for _, s := range r.Scores {
		out = append(out, blokusdto.ScoreEntry{Name: s.Name, Seat: s.Seat, Score: s.Score})
	}
	return out
}

func ToDTOSummaries(list []pvpblokus.Summary) []blokusdto.RoomSummary {
	out := make([]blokusdto.RoomSummary, 0, len(list))
	for _, s := range list {
		players := append([]string{}, s.Players...)
		out = append(out, blokusdto.RoomSummary{RoomID: s.RoomID, State: string(s.State), Players: players})
	}
	return out
}
