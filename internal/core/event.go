package core

// EventKind identifies something noteworthy that happened during a tick.
type EventKind int

const (
	EventSpawn     EventKind = iota // A bottle entered the playfield
	EventPop                        // A tap burst a bottle
	EventMissTap                    // A tap hit nothing
	EventGameOver                   // A bottle reached the bottom
	EventIntensity                  // The intensity dial moved
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventPop:
		return "pop"
	case EventMissTap:
		return "miss_tap"
	case EventGameOver:
		return "game_over"
	case EventIntensity:
		return "intensity"
	default:
		return "unknown"
	}
}

// Event is emitted by a game step. Platforms use events to play sounds
// and write debug logs; the game itself never depends on how they are used.
type Event struct {
	Kind  EventKind
	X, Y  int   // Cell position the event refers to
	Color Color // Color of the bottle involved, if any
	Value int   // Kind-specific payload (score after a pop, dial position)
}
