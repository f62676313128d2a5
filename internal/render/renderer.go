package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strconv"

	"github.com/park285/Cheese-Blokus/internal/blokus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Board is the input of a render: an owner grid plus optional decorations.
type Board struct {
	Cells    [][]blokus.Owner
	LastMove []blokus.Cell
	// Players holds display names by seat, used for the legend.
	Players []string
	Turn    int
	Ended   bool
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, b Board) ([]byte, error)
}

type pngRenderer struct {
	cellSize int
}

// NewPNGRenderer returns a renderer drawing cellSize-pixel cells. Values below 8 use 36.
func NewPNGRenderer(cellSize int) BoardRenderer {
	if cellSize < 8 {
		cellSize = 36
	}
	return &pngRenderer{cellSize: cellSize}
}

var (
	backgroundColor = color.NRGBA{R: 28, G: 31, B: 46, A: 255}
	emptyCellColor  = color.NRGBA{R: 226, G: 229, B: 236, A: 255}
	gridLineColor   = color.NRGBA{R: 190, G: 194, B: 204, A: 255}
	startMarkColor  = color.NRGBA{R: 120, G: 126, B: 140, A: 255}
	lastMoveColor   = color.NRGBA{R: 255, G: 228, B: 120, A: 150}
	labelColor      = color.NRGBA{R: 204, G: 210, B: 236, A: 255}
)

// seat fill and edge colours, matching the blue/orange seat colours.
var seatTiles = [2][2]string{
	{"#2f6fde", "#1d4a9c"},
	{"#f08a24", "#b0601a"},
}

func (r *pngRenderer) RenderPNG(ctx context.Context, b Board) ([]byte, error) {
	size := len(b.Cells)
	if size == 0 {
		return nil, fmt.Errorf("board is empty")
	}

	const (
		margin       = 28
		legendHeight = 30
	)
	cs := r.cellSize
	boardPx := size * cs
	origin := image.Point{X: margin, Y: margin}
	img := image.NewRGBA(image.Rect(0, 0, boardPx+margin*2, boardPx+margin*2+legendHeight))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, imagedraw.Src)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	drawGrid(img, size, cs, origin)
	for _, seat := range []int{0, 1} {
		c := blokus.StartCorner(size, seat)
		drawDot(img, cellRect(c.Row, c.Col, cs, origin), startMarkColor)
	}
	for row, line := range b.Cells {
		for col, o := range line {
			seat := o.Seat()
			if seat < 0 || seat >= len(seatTiles) {
				continue
			}
			tile, err := renderTile(seatTiles[seat][0], seatTiles[seat][1], cs)
			if err != nil {
				return nil, err
			}
			rect := cellRect(row, col, cs, origin)
			imagedraw.Draw(img, rect, tile, image.Point{}, imagedraw.Over)
		}
	}
	for _, c := range b.LastMove {
		if c.Row < 0 || c.Row >= size || c.Col < 0 || c.Col >= size {
			continue
		}
		imagedraw.Draw(img, cellRect(c.Row, c.Col, cs, origin), image.NewUniform(lastMoveColor), image.Point{}, imagedraw.Over)
	}

	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(labelColor), Face: basicfont.Face7x13}
	drawCoordinates(drawer, size, cs, origin, margin)
	drawLegend(drawer, b, image.Rect(margin, origin.Y+boardPx+margin/2, margin+boardPx, img.Bounds().Max.Y))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func cellRect(row, col, cs int, origin image.Point) image.Rectangle {
	x := origin.X + col*cs
	y := origin.Y + row*cs
	return image.Rect(x, y, x+cs, y+cs)
}

func drawGrid(img *image.RGBA, size, cs int, origin image.Point) {
	boardPx := size * cs
	imagedraw.Draw(img, image.Rect(origin.X, origin.Y, origin.X+boardPx, origin.Y+boardPx), image.NewUniform(emptyCellColor), image.Point{}, imagedraw.Src)
	for i := 0; i <= size; i++ {
		off := i * cs
		imagedraw.Draw(img, image.Rect(origin.X+off, origin.Y, origin.X+off+1, origin.Y+boardPx), image.NewUniform(gridLineColor), image.Point{}, imagedraw.Src)
		imagedraw.Draw(img, image.Rect(origin.X, origin.Y+off, origin.X+boardPx, origin.Y+off+1), image.NewUniform(gridLineColor), image.Point{}, imagedraw.Src)
	}
}

func drawDot(img *image.RGBA, rect image.Rectangle, clr color.Color) {
	c := rect.Min.Add(rect.Max).Div(2)
	radius := rect.Dx() / 6
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				img.Set(c.X+x, c.Y+y, clr)
			}
		}
	}
}

// drawCoordinates labels rows and columns 0-based, matching the anchor coordinates clients send.
func drawCoordinates(drawer *font.Drawer, size, cs int, origin image.Point, margin int) {
	ascent := drawer.Face.Metrics().Ascent.Ceil()
	for i := 0; i < size; i++ {
		label := strconv.Itoa(i)
		center := i*cs + cs/2
		drawCenteredText(drawer, label, origin.X-margin/2, origin.Y+center+ascent/2)
		drawCenteredText(drawer, label, origin.X+center, origin.Y-margin/2+ascent/2)
	}
}

func drawLegend(drawer *font.Drawer, b Board, rect image.Rectangle) {
	ascent := drawer.Face.Metrics().Ascent.Ceil()
	x := rect.Min.X
	for seat, name := range b.Players {
		if seat >= len(seatTiles) {
			break
		}
		text := name
		if !b.Ended && seat == b.Turn {
			text = "> " + name
		}
		drawer.Dot = fixed.P(x, rect.Min.Y+ascent)
		drawer.Src = image.NewUniform(parseHex(seatTiles[seat][0]))
		drawer.DrawString(text)
		x += drawer.MeasureString(text).Ceil() + 24
	}
	drawer.Src = image.NewUniform(labelColor)
}

func drawCenteredText(drawer *font.Drawer, text string, centerX, baseline int) {
	width := drawer.MeasureString(text).Ceil()
	drawer.Dot = fixed.P(centerX-width/2, baseline)
	drawer.DrawString(text)
}

// parseHex reads #rrggbb. Malformed input yields opaque white.
func parseHex(s string) color.NRGBA {
	c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return c
	}
	c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
	return c
}
