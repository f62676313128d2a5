package pvpblokus

import (
    "fmt"

    "github.com/park285/Cheese-Blokus/internal/blokus"
)

var (
    ErrNameRequired     = errf("player name is required")
    ErrRoomNotFound     = errf("room not found")
    ErrRoomFull         = errf("room already has two players")
    ErrTooManyRooms     = errf("room limit reached")
    ErrNotYourTurn      = errf("not your turn")
    ErrNotSeated        = errf("connection is not seated in this room")
    ErrAlreadySeated    = errf("connection already holds a seat in this room")
    ErrPieceAlreadyUsed = errf("piece already used")
    ErrInvalidPiece     = errf("invalid piece index")
    ErrInvalidTransform = errf("invalid rotation or reflection")
    ErrInvalidPlacement = errf("invalid placement")
    ErrGameNotActive    = errf("game has not started")
    ErrGameOver         = errf("game is over")
    // 같은 이름의 플레이어가 아직 연결되어 있는 경우
    ErrNameTaken        = errf("name is in use by a connected player")
    ErrSessionNotFound  = errf("session not found")
)

type staticErr string
func (e staticErr) Error() string { return string(e) }
func errf(s string) error { return staticErr(s) }

// PlacementError carries the rule a rejected placement broke.
type PlacementError struct {
    Violation blokus.Violation
}

func (e *PlacementError) Error() string {
    return fmt.Sprintf("invalid placement: %s", e.Violation)
}

func (e *PlacementError) Is(target error) bool { return target == ErrInvalidPlacement }
