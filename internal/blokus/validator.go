package blokus

// Violation names the rule a placement broke.
type Violation int

const (
	ViolationNone Violation = iota
	ViolationEmptyShape
	ViolationOutOfBounds
	ViolationOverlap
	ViolationStartCorner
	ViolationEdgeContact
	ViolationNoCornerContact
)

func (v Violation) String() string {
	switch v {
	case ViolationNone:
		return "none"
	case ViolationEmptyShape:
		return "empty_shape"
	case ViolationOutOfBounds:
		return "out_of_bounds"
	case ViolationOverlap:
		return "overlap"
	case ViolationStartCorner:
		return "start_corner"
	case ViolationEdgeContact:
		return "edge_contact"
	case ViolationNoCornerContact:
		return "no_corner_contact"
	default:
		return "unknown"
	}
}

// Seat is the rule-relevant view of a player: who it is on the board,
// where its first piece must go and which pieces it has spent.
type Seat struct {
	Owner Owner
	Start Cell
	Used  PieceSet
}

// NewSeat builds the Seat for seat index idx on a board of the given size.
func NewSeat(idx, size int) Seat {
	return Seat{Owner: SeatOwner(idx), Start: StartCorner(size, idx)}
}

var (
	edgeNeighbours   = [4]Offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	cornerNeighbours = [4]Offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// Check evaluates shape anchored at (row, col) for seat and returns the first rule broken,
// or ViolationNone. The board is only read.
func Check(b *Board, seat Seat, shape Shape, row, col int) Violation {
	if len(shape) == 0 {
		return ViolationEmptyShape
	}
	for _, o := range shape {
		if !b.InBounds(row+o.Row, col+o.Col) {
			return ViolationOutOfBounds
		}
	}
	for _, o := range shape {
		if b.IsOccupied(row+o.Row, col+o.Col) {
			return ViolationOverlap
		}
	}

	if !b.Owns(seat.Owner) {
		for _, o := range shape {
			if row+o.Row == seat.Start.Row && col+o.Col == seat.Start.Col {
				return ViolationNone
			}
		}
		return ViolationStartCorner
	}

	// target cells are empty (checked above), so only pre-existing cells can match seat.Owner
	touchesCorner := false
	for _, o := range shape {
		r, c := row+o.Row, col+o.Col
		for _, n := range edgeNeighbours {
			if b.OwnerAt(r+n.Row, c+n.Col) == seat.Owner {
				return ViolationEdgeContact
			}
		}
		if !touchesCorner {
			for _, n := range cornerNeighbours {
				if b.OwnerAt(r+n.Row, c+n.Col) == seat.Owner {
					touchesCorner = true
					break
				}
			}
		}
	}
	if !touchesCorner {
		return ViolationNoCornerContact
	}
	return ViolationNone
}

// IsValid reports whether shape may be placed at (row, col) by seat.
func IsValid(b *Board, seat Seat, shape Shape, row, col int) bool {
	return Check(b, seat, shape, row, col) == ViolationNone
}

// Cells returns the absolute cells shape covers when anchored at (row, col).
func Cells(shape Shape, row, col int) []Cell {
	out := make([]Cell, len(shape))
	for i, o := range shape {
		out[i] = Cell{Row: row + o.Row, Col: col + o.Col}
	}
	return out
}
