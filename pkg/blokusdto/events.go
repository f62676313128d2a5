package blokusdto

// Seated answers room_created and joined.
type Seated struct {
	RoomID      string `json:"roomId"`
	Token       string `json:"token"`
	Seat        int    `json:"seat"`
	Color       string `json:"color"`
	Reconnected bool   `json:"reconnected,omitempty"`
}

type PlayerEntry struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	Seat      int    `json:"seat"`
	Connected bool   `json:"connected"`
}

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// UpdateBoard carries the full board, each cell the owner's name or "".
type UpdateBoard struct {
	Board    [][]string `json:"board"`
	LastMove []Cell     `json:"lastMove"`
}

type ScoreEntry struct {
	Name  string `json:"name"`
	Seat  int    `json:"seat"`
	Score int    `json:"score"`
}

type GameOver struct {
	Scores []ScoreEntry `json:"scores"`
	Winner string       `json:"winner,omitempty"`
	Text   string       `json:"text,omitempty"`
}

type Hint struct {
	Found      bool   `json:"found"`
	PieceIndex int    `json:"pieceIndex"`
	Rotation   int    `json:"rotation"`
	Reflection string `json:"reflection"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	Text       string `json:"text,omitempty"`
}

// Error is delivered only to the endpoint whose intent failed.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RoomSummary is one entry of GET /rooms.
type RoomSummary struct {
	RoomID  string   `json:"roomId"`
	State   string   `json:"state"`
	Players []string `json:"players"`
}
