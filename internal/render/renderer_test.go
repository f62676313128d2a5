package render

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/park285/Cheese-Blokus/internal/blokus"
)

func TestRenderPNG(t *testing.T) {
	b := blokus.NewBoard(blokus.DefaultSize)
	b.Place(blokus.SeatOwner(0), []blokus.Cell{{Row: 4, Col: 4}, {Row: 4, Col: 5}})
	b.Place(blokus.SeatOwner(1), []blokus.Cell{{Row: 9, Col: 9}})

	r := NewPNGRenderer(20)
	out, err := r.RenderPNG(context.Background(), Board{
		Cells:    b.Snapshot(),
		LastMove: []blokus.Cell{{Row: 9, Col: 9}, {Row: 99, Col: 0}},
		Players:  []string{"alice", "bob"},
	})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if w := img.Bounds().Dx(); w != 14*20+2*28 {
		t.Fatalf("width = %d", w)
	}

	// center of (4,4) is a blue tile, not the empty cell colour
	x, y := 28+4*20+10, 28+4*20+10
	cr, cg, cb, _ := img.At(x, y).RGBA()
	if cb>>8 < 150 || cr>>8 > 150 || cg>>8 > 180 {
		t.Fatalf("expected blue tile at (4,4), got %d,%d,%d", cr>>8, cg>>8, cb>>8)
	}
}

func TestRenderPNGErrors(t *testing.T) {
	r := NewPNGRenderer(0)
	if _, err := r.RenderPNG(context.Background(), Board{}); err == nil {
		t.Fatalf("expected error for empty board")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.RenderPNG(ctx, Board{Cells: blokus.NewBoard(blokus.DefaultSize).Snapshot()}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestParseHex(t *testing.T) {
	if c := parseHex("#2f6fde"); c.R != 0x2f || c.G != 0x6f || c.B != 0xde {
		t.Fatalf("parseHex = %+v", c)
	}
	if c := parseHex("nope"); c.R != 255 {
		t.Fatalf("fallback = %+v", c)
	}
}
