package bottles

import (
	"math/rand"

	"github.com/vovakirdan/bottlepop/internal/core"
)

// Spawner decides when the next bottle enters and where.
type Spawner struct {
	rng       *rand.Rand
	untilNext float64 // Seconds until the next spawn is due
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Reset makes the next spawn due immediately.
func (s *Spawner) Reset(rng *rand.Rand) {
	s.rng = rng
	s.untilNext = 0
}

// Due advances the spawn timer by dt seconds and reports whether a bottle
// should spawn now. At most one spawn is due per call; when it fires, the
// timer restarts from interval.
func (s *Spawner) Due(dt, interval float64) bool {
	s.untilNext -= dt
	if s.untilNext > 0 {
		return false
	}
	s.untilNext += interval
	if s.untilNext <= 0 {
		s.untilNext = interval
	}
	return true
}

// RetryIn schedules the next spawn delay seconds from now.
// Used when a due spawn found no room.
func (s *Spawner) RetryIn(delay float64) {
	s.untilNext = delay
}

// PickColumn chooses a left column for a w-by-h bottle on a playfield
// fieldW cells wide. A column is rejected if a live bottle overlaps the
// entry lane: the h rows above the field plus the first h rows inside it.
// Returns false when no free column was found within attempts picks.
func (s *Spawner) PickColumn(fieldW, w, h, attempts int, live []*Bottle) (int, bool) {
	span := fieldW - w + 1
	if span <= 0 {
		return 0, false
	}

	for i := 0; i < attempts; i++ {
		x := s.rng.Intn(span)
		lane := core.NewRect(x, -h, w, 2*h)

		blocked := false
		for _, b := range live {
			if b.Live() && lane.Intersects(b.Bounds()) {
				blocked = true
				break
			}
		}
		if !blocked {
			return x, true
		}
	}
	return 0, false
}

// PickColor chooses a bottle color from the palette.
func (s *Spawner) PickColor() core.Color {
	return core.BottlePalette[s.rng.Intn(len(core.BottlePalette))]
}
