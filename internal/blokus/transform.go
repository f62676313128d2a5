package blokus

import "strings"

// Rotation counts counter-clockwise quarter turns. Valid values are 0..3.
type Rotation int

// Valid reports whether r is one of the four quarter turns.
func (r Rotation) Valid() bool { return r >= 0 && r <= 3 }

// Reflection negates one axis after rotation.
type Reflection string

const (
	ReflectNone       Reflection = "none"
	ReflectHorizontal Reflection = "horizontal"
	ReflectVertical   Reflection = "vertical"
)

// Reflections lists every reflection in enumeration order.
var Reflections = [...]Reflection{ReflectNone, ReflectHorizontal, ReflectVertical}

// ParseReflection maps client input to a Reflection. Empty input means none.
func ParseReflection(s string) (Reflection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ReflectNone, true
	case "horizontal", "h":
		return ReflectHorizontal, true
	case "vertical", "v":
		return ReflectVertical, true
	default:
		return "", false
	}
}

// Shape is a transformed piece: anchor-relative offsets, not normalized.
type Shape []Offset

// Transform rotates p by rot quarter turns, (r, c) -> (-c, r) per turn, and then applies ref.
// The order is fixed; reflecting first yields a different shape for asymmetric pieces.
// p is never modified.
func Transform(p Piece, rot Rotation, ref Reflection) Shape {
	turns := ((int(rot) % 4) + 4) % 4
	out := make(Shape, len(p))
	for i, o := range p {
		r, c := o.Row, o.Col
		for t := 0; t < turns; t++ {
			r, c = -c, r
		}
		switch ref {
		case ReflectHorizontal:
			c = -c
		case ReflectVertical:
			r = -r
		}
		out[i] = Offset{Row: r, Col: c}
	}
	return out
}

// Normalize shifts s so its minimum row and column are zero.
// Only for display grouping; placement always uses the un-normalized offsets.
func Normalize(s Shape) Shape {
	if len(s) == 0 {
		return Shape{}
	}
	minR, minC := s[0].Row, s[0].Col
	for _, o := range s[1:] {
		if o.Row < minR {
			minR = o.Row
		}
		if o.Col < minC {
			minC = o.Col
		}
	}
	out := make(Shape, len(s))
	for i, o := range s {
		out[i] = Offset{Row: o.Row - minR, Col: o.Col - minC}
	}
	return out
}

// BoundingBox returns the inclusive extents of s after normalization.
func BoundingBox(s Shape) (width, height int) {
	n := Normalize(s)
	if len(n) == 0 {
		return 0, 0
	}
	for _, o := range n {
		if o.Col+1 > width {
			width = o.Col + 1
		}
		if o.Row+1 > height {
			height = o.Row + 1
		}
	}
	return width, height
}
