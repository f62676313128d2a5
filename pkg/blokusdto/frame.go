package blokusdto

import "encoding/json"

// Frame is the envelope of every websocket message in both directions.
type Frame struct {
	T  string          `json:"t"`
	ID string          `json:"id,omitempty"`
	M  json.RawMessage `json:"m,omitempty"`
}

// Intent types sent by clients.
const (
	TypeCreateRoom = "create_room"
	TypeJoinRoom   = "join_room"
	TypePlaceMove  = "place_move"
	TypeHint       = "hint"
	TypePing       = "ping"
)

// Event types sent by the server.
const (
	TypeRoomCreated        = "room_created"
	TypeJoined             = "joined"
	TypePlayerList         = "player_list"
	TypePlayerColors       = "player_colors"
	TypeUpdateBoard        = "update_board"
	TypeUpdateUsedPieces   = "update_used_pieces"
	TypeOpponentUsedPieces = "opponent_used_pieces"
	TypeYourTurn           = "your_turn"
	TypeWaitTurn           = "wait_turn"
	TypeGameOver           = "game_over"
	TypeError              = "error"
	TypePong               = "pong"
)

// NewFrame marshals payload into a frame. A nil payload leaves M empty.
func NewFrame(t, id string, payload any) (Frame, error) {
	f := Frame{T: t, ID: id}
	if payload == nil {
		return f, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, err
	}
	f.M = raw
	return f, nil
}

// Decode unmarshals the frame payload into v.
func (f Frame) Decode(v any) error {
	if len(f.M) == 0 {
		return json.Unmarshal([]byte("{}"), v)
	}
	return json.Unmarshal(f.M, v)
}
