// Package audio synthesizes the game's sound effects and maps game events to them.
//
// Sounds are generated procedurally as 16-bit little-endian stereo PCM so
// both the terminal player (package otoplayer) and the window front end (ebiten/audio)
// can feed the same bytes to their devices.
package audio

import "github.com/vovakirdan/bottlepop/internal/core"

const (
	SampleRate    = 44100
	ChannelCount  = 2
	bytesPerFrame = ChannelCount * 2
)

// Sound identifies a sound effect.
type Sound int

const (
	SoundPop Sound = iota
	SoundMiss
	SoundGameOver
	SoundIntensity
)

// Sounds lists every sound effect.
var Sounds = []Sound{SoundPop, SoundMiss, SoundGameOver, SoundIntensity}

func (s Sound) String() string {
	switch s {
	case SoundPop:
		return "pop"
	case SoundMiss:
		return "miss"
	case SoundGameOver:
		return "game_over"
	case SoundIntensity:
		return "intensity"
	default:
		return "unknown"
	}
}

// Player plays sound effects without blocking the caller.
type Player interface {
	Play(s Sound)
	Close() error
}

// Nop is a Player that stays silent. Used for --mute and when no audio
// device is available.
type Nop struct{}

func (Nop) Play(Sound)   {}
func (Nop) Close() error { return nil }

// ForEvent maps a game event to the sound it should make.
// Returns false for events that are silent.
func ForEvent(ev core.Event) (Sound, bool) {
	switch ev.Kind {
	case core.EventPop:
		return SoundPop, true
	case core.EventMissTap:
		return SoundMiss, true
	case core.EventGameOver:
		return SoundGameOver, true
	case core.EventIntensity:
		return SoundIntensity, true
	default:
		return 0, false
	}
}

// PlayEvents plays the sound for each event in order.
func PlayEvents(p Player, events []core.Event) {
	for _, ev := range events {
		if s, ok := ForEvent(ev); ok {
			p.Play(s)
		}
	}
}
