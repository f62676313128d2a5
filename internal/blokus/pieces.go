package blokus

import "math/bits"

// Offset is a (row, col) displacement relative to a shape's anchor cell.
type Offset struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Piece is one of the fixed catalog shapes, expressed as anchor-relative offsets.
type Piece []Offset

// PieceCount is the size of the catalog.
const PieceCount = 21

// catalog is shared by every session and never mutated; accessors hand out copies.
var catalog = [PieceCount]Piece{
	{{0, 0}},
	{{0, 0}, {0, 1}},
	{{0, 0}, {0, 1}, {0, 2}},
	{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}},
	{{0, 0}, {0, 1}, {1, 1}},
	{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	{{0, 0}, {1, 0}, {1, 1}, {2, 0}},
	{{0, 0}, {1, 0}, {1, 1}, {1, 2}, {1, 3}},
	{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}},
	{{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 1}},
	{{0, 0}, {0, 2}, {1, 0}, {1, 1}, {1, 2}},
	{{0, 1}, {1, 0}, {1, 1}, {1, 2}, {2, 1}},
	{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {2, 1}},
	{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 1}},
	{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {1, 1}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {3, 1}},
}

// ValidPieceIndex reports whether idx addresses a catalog entry.
func ValidPieceIndex(idx int) bool { return idx >= 0 && idx < PieceCount }

// PieceAt returns a copy of the catalog piece at idx.
func PieceAt(idx int) (Piece, bool) {
	if !ValidPieceIndex(idx) {
		return nil, false
	}
	return append(Piece(nil), catalog[idx]...), true
}

// PieceSize returns the cell count of the catalog piece at idx, or 0 when idx is out of range.
func PieceSize(idx int) int {
	if !ValidPieceIndex(idx) {
		return 0
	}
	return len(catalog[idx])
}

// PieceSet is a set of catalog indices. The zero value is empty.
type PieceSet uint32

// Has reports whether idx is in the set.
func (s PieceSet) Has(idx int) bool {
	if !ValidPieceIndex(idx) {
		return false
	}
	return s&(1<<uint(idx)) != 0
}

// With returns the set with idx added. Out of range indices are ignored.
func (s PieceSet) With(idx int) PieceSet {
	if !ValidPieceIndex(idx) {
		return s
	}
	return s | 1<<uint(idx)
}

// Len returns the number of indices in the set.
func (s PieceSet) Len() int { return bits.OnesCount32(uint32(s)) }

// Indices lists the members in ascending order.
func (s PieceSet) Indices() []int {
	out := make([]int, 0, s.Len())
	for i := 0; i < PieceCount; i++ {
		if s.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// UnusedCells sums the cell counts of every catalog piece not in used.
// This is the end-of-game score; lower is better.
func UnusedCells(used PieceSet) int {
	total := 0
	for i := 0; i < PieceCount; i++ {
		if !used.Has(i) {
			total += len(catalog[i])
		}
	}
	return total
}
