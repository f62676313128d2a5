package blokus

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedOffsets(s Shape) []Offset {
	out := append([]Offset(nil), s...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func TestTransformRotateOnce(t *testing.T) {
	p, ok := PieceAt(1)
	require.True(t, ok)

	got := Transform(p, 1, ReflectNone)
	assert.Equal(t, Shape{{0, 0}, {-1, 0}}, got)
}

func TestTransformFourTurnsIsIdentity(t *testing.T) {
	for idx := 0; idx < PieceCount; idx++ {
		p, _ := PieceAt(idx)
		want := sortedOffsets(Shape(p))
		for _, ref := range Reflections {
			once := Transform(p, 0, ref)
			again := Transform(Piece(once), 0, ref)
			assert.Equal(t, want, sortedOffsets(again), "piece %d reflect %s twice", idx, ref)
		}
		assert.Equal(t, want, sortedOffsets(Transform(p, 4, ReflectNone)), "piece %d rotation 4", idx)

		s := Shape(p)
		for i := 0; i < 4; i++ {
			s = Transform(Piece(s), 1, ReflectNone)
		}
		assert.Equal(t, want, sortedOffsets(s), "piece %d four single turns", idx)
	}
}

func TestTransformRotatesBeforeReflecting(t *testing.T) {
	p, _ := PieceAt(7)

	got := Transform(p, 1, ReflectHorizontal)
	// rotate: (0,0)(1,0)(1,1)(1,2) -> (0,0)(0,1)(-1,1)(-2,1); then negate col
	assert.Equal(t, Shape{{0, 0}, {0, -1}, {-1, -1}, {-2, -1}}, got)
}

func TestTransformDoesNotMutateCatalog(t *testing.T) {
	before, _ := PieceAt(10)
	p, _ := PieceAt(10)
	_ = Transform(p, 3, ReflectVertical)
	after, _ := PieceAt(10)
	assert.Equal(t, before, after)
}

func TestNormalize(t *testing.T) {
	s := Shape{{-2, 1}, {-1, -1}, {0, 0}}
	n := Normalize(s)
	assert.Equal(t, Shape{{0, 2}, {1, 0}, {2, 1}}, n)
	assert.Equal(t, n, Normalize(n))
	assert.Empty(t, Normalize(nil))

	w, h := BoundingBox(s)
	assert.Equal(t, 3, w)
	assert.Equal(t, 3, h)
}

func TestParseReflection(t *testing.T) {
	cases := map[string]Reflection{"": ReflectNone, "none": ReflectNone, "H": ReflectHorizontal, "vertical": ReflectVertical}
	for in, want := range cases {
		r, ok := ParseReflection(in)
		require.True(t, ok, in)
		assert.Equal(t, want, r)
	}
	_, ok := ParseReflection("diagonal")
	assert.False(t, ok)
}
