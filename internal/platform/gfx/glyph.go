package gfx

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Tile size of one screen cell in logical pixels.
const (
	CellW = 10
	CellH = 16
)

// shape is how a rune is painted into its tile.
type shape int

const (
	shapeBlank shape = iota
	shapeFull        // █
	shapeLower       // ▄
	shapeUpper       // ▀
	shapeShade       // ░
	shapeDouble      // ═
	shapeHLine       // ─
	shapeVLine       // │
	shapeCorner      // ┌ ┐ └ ┘
	shapeDot         // ·
	shapeSpark       // ✶ * +
	shapeText        // printable ASCII
)

// shapeOf classifies a rune. Runes with no drawing rule render as text
// when ASCII and blank otherwise.
func shapeOf(r rune) shape {
	switch r {
	case ' ', 0:
		return shapeBlank
	case '█':
		return shapeFull
	case '▄':
		return shapeLower
	case '▀':
		return shapeUpper
	case '░':
		return shapeShade
	case '═':
		return shapeDouble
	case '─':
		return shapeHLine
	case '│':
		return shapeVLine
	case '┌', '┐', '└', '┘':
		return shapeCorner
	case '·':
		return shapeDot
	case '✶', '*', '+':
		return shapeSpark
	}
	if r > ' ' && r < 0x7f {
		return shapeText
	}
	return shapeBlank
}

// glyphCache holds white text glyphs, tinted per draw.
type glyphCache struct {
	images map[rune]*ebiten.Image
}

func newGlyphCache() *glyphCache {
	return &glyphCache{images: make(map[rune]*ebiten.Image)}
}

func (gc *glyphCache) get(r rune) *ebiten.Image {
	if img, ok := gc.images[r]; ok {
		return img
	}
	img := ebiten.NewImage(CellW, CellH)
	ebitenutil.DebugPrintAt(img, string(r), 2, 0)
	gc.images[r] = img
	return img
}

// drawCell paints rune r into the tile at cell (cx, cy).
func (gc *glyphCache) drawCell(dst *ebiten.Image, cx, cy int, r rune, clr color.RGBA) {
	x := float32(cx * CellW)
	y := float32(cy * CellH)
	const w, h = float32(CellW), float32(CellH)

	switch shapeOf(r) {
	case shapeBlank:
	case shapeFull:
		vector.DrawFilledRect(dst, x, y, w, h, clr, false)
	case shapeLower:
		vector.DrawFilledRect(dst, x+w/4, y+h/2, w/2, h/2, clr, false)
	case shapeUpper:
		vector.DrawFilledRect(dst, x, y, w, h/2, clr, false)
	case shapeShade:
		shade := clr
		shade.A = 0x50
		vector.DrawFilledRect(dst, x+1, y+2, w-2, h-4, shade, false)
	case shapeDouble:
		vector.DrawFilledRect(dst, x, y+h/2-3, w, 2, clr, false)
		vector.DrawFilledRect(dst, x, y+h/2+1, w, 2, clr, false)
	case shapeHLine:
		vector.DrawFilledRect(dst, x, y+h/2-1, w, 2, clr, false)
	case shapeVLine:
		vector.DrawFilledRect(dst, x+w/2-1, y, 2, h, clr, false)
	case shapeCorner:
		vector.DrawFilledRect(dst, x+w/2-1, y+h/2-1, 2, 2, clr, false)
		gc.drawCorner(dst, x, y, r, clr)
	case shapeDot:
		vector.DrawFilledCircle(dst, x+w/2, y+h/2, 1.5, clr, true)
	case shapeSpark:
		vector.DrawFilledRect(dst, x+w/2-1, y+h/2-5, 2, 10, clr, false)
		vector.DrawFilledRect(dst, x+w/2-5, y+h/2-1, 10, 2, clr, false)
		if r == '✶' {
			vector.DrawFilledCircle(dst, x+w/2, y+h/2, 3, clr, true)
		}
	case shapeText:
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x), float64(y))
		op.ColorScale.ScaleWithColor(clr)
		dst.DrawImage(gc.get(r), op)
	}
}

// drawCorner extends a box corner toward its two neighbors.
func (gc *glyphCache) drawCorner(dst *ebiten.Image, x, y float32, r rune, clr color.RGBA) {
	const w, h = float32(CellW), float32(CellH)
	cx, cy := x+w/2-1, y+h/2-1
	switch r {
	case '┌':
		vector.DrawFilledRect(dst, cx, cy, w/2+1, 2, clr, false)
		vector.DrawFilledRect(dst, cx, cy, 2, h/2+1, clr, false)
	case '┐':
		vector.DrawFilledRect(dst, x, cy, w/2+1, 2, clr, false)
		vector.DrawFilledRect(dst, cx, cy, 2, h/2+1, clr, false)
	case '└':
		vector.DrawFilledRect(dst, cx, cy, w/2+1, 2, clr, false)
		vector.DrawFilledRect(dst, cx, y, 2, h/2+1, clr, false)
	case '┘':
		vector.DrawFilledRect(dst, x, cy, w/2+1, 2, clr, false)
		vector.DrawFilledRect(dst, cx, y, 2, h/2+1, clr, false)
	}
}
