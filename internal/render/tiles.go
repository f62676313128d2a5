package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// tileSVG is a bevelled square tile; %s is the fill and %s the edge colour.
const tileSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">
<rect x="4" y="4" width="92" height="92" rx="14" ry="14" fill="%s" stroke="%s" stroke-width="6"/>
<rect x="18" y="16" width="64" height="14" rx="7" ry="7" fill="#ffffff" fill-opacity="0.35"/>
</svg>`

type tileKey struct {
	fill string
	size int
}

var (
	tileCache   = map[tileKey]image.Image{}
	tileCacheMu sync.RWMutex
)

// renderTile rasterises one tile at size x size, cached per colour and size.
func renderTile(fill, edge string, size int) (image.Image, error) {
	key := tileKey{fill: fill, size: size}

	tileCacheMu.RLock()
	if img, ok := tileCache[key]; ok {
		tileCacheMu.RUnlock()
		return img, nil
	}
	tileCacheMu.RUnlock()

	icon, err := oksvg.ReadIconStream(bytes.NewReader([]byte(fmt.Sprintf(tileSVG, fill, edge))))
	if err != nil {
		return nil, fmt.Errorf("parse tile svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	tileCacheMu.Lock()
	tileCache[key] = img
	tileCacheMu.Unlock()

	return img, nil
}
