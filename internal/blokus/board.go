package blokus

// DefaultSize is the only supported board dimension.
const DefaultSize = 14

// Owner identifies who holds a cell. Seats map to Owner(seat+1).
type Owner int8

const NoOwner Owner = 0

// SeatOwner returns the Owner value for a seat index.
func SeatOwner(seat int) Owner { return Owner(seat + 1) }

// Seat returns the seat index of o, or -1 for NoOwner.
func (o Owner) Seat() int { return int(o) - 1 }

// Cell is an absolute board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// StartCorner returns the cell a seat's first piece must cover.
// Seat 0 and seat 1 sit on diagonally opposite points, (4,4) and (9,9) on a 14x14 board.
func StartCorner(size, seat int) Cell {
	if seat == 1 {
		return Cell{Row: size - 5, Col: size - 5}
	}
	return Cell{Row: 4, Col: 4}
}

// Board is a square ownership grid. It does no rule checking; callers validate first.
// Cells are never cleared once owned.
type Board struct {
	size  int
	cells []Owner
}

// NewBoard returns an empty size x size board.
func NewBoard(size int) *Board {
	if size <= 0 {
		size = DefaultSize
	}
	return &Board{size: size, cells: make([]Owner, size*size)}
}

func (b *Board) Size() int { return b.size }

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// IsOccupied reports whether an on-board cell is owned. Off-board coordinates report false;
// bounds are a separate check.
func (b *Board) IsOccupied(row, col int) bool {
	return b.OwnerAt(row, col) != NoOwner
}

// OwnerAt returns the owner of (row, col), or NoOwner when empty or off the board.
func (b *Board) OwnerAt(row, col int) Owner {
	if !b.InBounds(row, col) {
		return NoOwner
	}
	return b.cells[row*b.size+col]
}

// Place marks cells as owned by owner. Cells must be on the board.
func (b *Board) Place(owner Owner, cells []Cell) {
	for _, c := range cells {
		b.cells[c.Row*b.size+c.Col] = owner
	}
}

// Owns reports whether owner holds at least one cell.
func (b *Board) Owns(owner Owner) bool {
	for _, o := range b.cells {
		if o == owner {
			return true
		}
	}
	return false
}

// CountOwned returns how many cells owner holds.
func (b *Board) CountOwned(owner Owner) int {
	n := 0
	for _, o := range b.cells {
		if o == owner {
			n++
		}
	}
	return n
}

// Snapshot copies the grid row by row. The result shares nothing with b.
func (b *Board) Snapshot() [][]Owner {
	out := make([][]Owner, b.size)
	for r := 0; r < b.size; r++ {
		row := make([]Owner, b.size)
		copy(row, b.cells[r*b.size:(r+1)*b.size])
		out[r] = row
	}
	return out
}

// Clone returns an independent copy of b.
func (b *Board) Clone() *Board {
	return &Board{size: b.size, cells: append([]Owner(nil), b.cells...)}
}
