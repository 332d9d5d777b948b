package bottles

import (
	"math"

	"github.com/vovakirdan/bottlepop/internal/core"
)

// BottleState tracks where a bottle is in its life cycle.
type BottleState uint8

const (
	StateFree     BottleState = iota // Sitting in the pool
	StateFalling                     // Live, can be tapped, ends the game on reaching the floor
	StateBursting                    // Popped, playing the burst animation
)

// String returns a human-readable name for the state.
func (s BottleState) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateFalling:
		return "falling"
	case StateBursting:
		return "bursting"
	default:
		return "unknown"
	}
}

// Bottle is one falling sprite. Bottles are recycled through a Pool, so a
// pointer stays valid for the lifetime of the game but its contents are
// zeroed on release.
type Bottle struct {
	ID        uint64
	X         int     // Left column
	Y         float64 // Top row, fractional while falling
	W, H      int
	Color     core.Color
	State     BottleState
	BurstLeft int // Ticks of burst animation remaining
}

// Bounds returns the cells the bottle currently covers.
func (b *Bottle) Bounds() core.Rect {
	return core.NewRect(b.X, int(math.Floor(b.Y)), b.W, b.H)
}

// Live reports whether the bottle is on the playfield.
func (b *Bottle) Live() bool {
	return b.State == StateFalling || b.State == StateBursting
}
