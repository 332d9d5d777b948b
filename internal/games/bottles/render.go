package bottles

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/bottlepop/internal/core"
)

// Visual characters for rendering
const (
	CapChar     = '▄'
	BodyChar    = '█'
	BaseChar    = '▀'
	FloorChar   = '═'
	DialOnChar  = '█'
	DialOffChar = '░'
)

// burstFrames are drawn in order as the burst animation runs out.
var burstFrames = []struct {
	glyph rune
	fade  bool // draw in gray instead of the bottle color
}{
	{'✶', false},
	{'*', false},
	{'+', true},
	{'·', true},
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	floor := g.floorY()
	floorColor := core.ColorGray
	if g.gameOver {
		floorColor = core.ColorRed
	}
	dst.DrawHLine(0, floor, dst.Width(), FloorChar, floorColor)

	for _, b := range g.active {
		switch b.State {
		case StateFalling:
			color := b.Color
			if b == g.missed {
				color = core.ColorRed
			}
			drawBottle(dst, b.Bounds(), color, floor)
		case StateBursting:
			g.drawBurst(dst, b, floor)
		}
	}

	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawBottle paints a bottle sprite: a cap over the center column, a solid
// body and a flat base. Rows at or below the floor are not drawn.
func drawBottle(dst *core.Screen, r core.Rect, color core.Color, floor int) {
	set := func(x, y int, ch rune) {
		if y >= floor {
			return
		}
		dst.SetColored(x, y, ch, color)
	}

	if r.W == 1 || r.H < 3 {
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				set(x, y, BodyChar)
			}
		}
		return
	}

	cx, _ := r.Center()
	set(cx, r.Y, CapChar)
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		for x := r.X; x < r.Right(); x++ {
			set(x, y, BodyChar)
		}
	}
	for x := r.X; x < r.Right(); x++ {
		set(x, r.Bottom()-1, BaseChar)
	}
}

// drawBurst paints the pop animation: a ring of sparks that widens and
// fades as the burst runs out.
func (g *Game) drawBurst(dst *core.Screen, b *Bottle, floor int) {
	total := g.cfg.Burst.Ticks
	if total <= 0 {
		return
	}
	elapsed := total - b.BurstLeft
	frame := elapsed * len(burstFrames) / total
	if frame >= len(burstFrames) {
		frame = len(burstFrames) - 1
	}
	f := burstFrames[frame]

	color := b.Color
	if f.fade {
		color = core.ColorGray
		if frame == len(burstFrames)-1 {
			color = core.ColorDarkGray
		}
	}

	cx, cy := b.Bounds().Center()
	spread := frame + 1
	points := [][2]int{
		{cx, cy},
		{cx - spread, cy - spread/2},
		{cx + spread, cy - spread/2},
		{cx - spread, cy + spread/2},
		{cx + spread, cy + spread/2},
		{cx, cy - spread},
		{cx, cy + spread},
	}
	for _, p := range points {
		if p[1] >= floor {
			continue
		}
		dst.SetColored(p[0], p[1], f.glyph, color)
	}
}

// drawHUD draws score, best score and the intensity dial on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	left := fmt.Sprintf(" Score: %d  Best: %d ", g.score, g.best)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	steps := g.cfg.Intensity.Steps
	dial := " Intensity [" + strings.Repeat(string(DialOnChar), g.intensity) +
		strings.Repeat(string(DialOffChar), steps-g.intensity) + fmt.Sprintf("] %d/%d ", g.intensity, steps)

	x := dst.Width() - len([]rune(dial))
	if x <= len(left) {
		// Narrow screens get the short form
		dial = fmt.Sprintf(" I:%d/%d ", g.intensity, steps)
		x = dst.Width() - len(dial)
	}
	dst.DrawTextColored(x, 0, dial, dialColor(g.intensity, steps))
}

// dialColor shifts from green to red as the dial rises.
func dialColor(intensity, steps int) core.Color {
	switch {
	case steps <= 0 || intensity*3 < steps:
		return core.ColorBrightGreen
	case intensity*3 < steps*2:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightRed
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}
