package blokuspresenter

import (
	"errors"

	"github.com/park285/Cheese-Blokus/internal/pvpblokus"
)

// ErrBadRequest marks frames that could not be decoded or carried an unknown type.
var ErrBadRequest = errors.New("bad request")

var errorCodes = []struct {
	err  error
	code string
}{
	{pvpblokus.ErrNameRequired, "name_required"},
	{pvpblokus.ErrRoomNotFound, "room_not_found"},
	{pvpblokus.ErrRoomFull, "room_full"},
	{pvpblokus.ErrTooManyRooms, "too_many_rooms"},
	{pvpblokus.ErrNameTaken, "name_taken"},
	{pvpblokus.ErrAlreadySeated, "already_seated"},
	{pvpblokus.ErrNotSeated, "not_seated"},
	{pvpblokus.ErrNotYourTurn, "not_your_turn"},
	{pvpblokus.ErrPieceAlreadyUsed, "piece_already_used"},
	{pvpblokus.ErrInvalidPiece, "invalid_piece"},
	{pvpblokus.ErrInvalidTransform, "invalid_transform"},
	{pvpblokus.ErrGameNotActive, "game_not_active"},
	{pvpblokus.ErrGameOver, "game_over"},
	{pvpblokus.ErrSessionNotFound, "session_not_found"},
	{ErrBadRequest, "bad_request"},
}

// ErrorCode maps an engine error to its stable wire code.
func ErrorCode(err error) string {
	var pe *pvpblokus.PlacementError
	if errors.As(err, &pe) {
		return "invalid_placement"
	}
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return "internal"
}
