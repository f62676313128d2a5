package blokus

// Move is a fully specified placement.
type Move struct {
	Piece      int        `json:"pieceIndex"`
	Rotation   Rotation   `json:"rotation"`
	Reflection Reflection `json:"reflection"`
	Row        int        `json:"row"`
	Col        int        `json:"col"`
}

// FindLegalMove searches unused pieces x rotations x reflections x every anchor on the board
// and returns the first legal placement. Anchors are not pre-filtered; Check rejects the
// out-of-bounds ones. Nothing is cached because the board changes between calls.
func FindLegalMove(b *Board, seat Seat) (Move, bool) {
	size := b.Size()
	for idx := 0; idx < PieceCount; idx++ {
		if seat.Used.Has(idx) {
			continue
		}
		piece := catalog[idx]
		for rot := Rotation(0); rot <= 3; rot++ {
			for _, ref := range Reflections {
				shape := Transform(piece, rot, ref)
				for row := 0; row < size; row++ {
					for col := 0; col < size; col++ {
						if IsValid(b, seat, shape, row, col) {
							return Move{Piece: idx, Rotation: rot, Reflection: ref, Row: row, Col: col}, true
						}
					}
				}
			}
		}
	}
	return Move{}, false
}

// HasAnyLegalMove reports whether seat can place any unused piece anywhere.
func HasAnyLegalMove(b *Board, seat Seat) bool {
	_, ok := FindLegalMove(b, seat)
	return ok
}
