package blokusdto

type CreateRoom struct {
	Name string `json:"name"`
}

// JoinRoom joins or reconnects. Token, when known, takes precedence over Name.
type JoinRoom struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
	Token  string `json:"token,omitempty"`
}

// PlaceMove uses a 0-based anchor. Reflection is none, horizontal or vertical.
type PlaceMove struct {
	RoomID     string `json:"roomId"`
	PieceIndex int    `json:"pieceIndex"`
	Rotation   int    `json:"rotation"`
	Reflection string `json:"reflection"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
}

type HintRequest struct {
	RoomID string `json:"roomId"`
}
