package gfx

import (
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/bottlepop/internal/audio"
)

// SoundBank plays the synthesized effects through Ebitengine's mixer.
// It implements audio.Player.
type SoundBank struct {
	ctx    *eaudio.Context
	volume float64
	clips  map[audio.Sound][]byte
}

// NewSoundBank renders every effect once. Only one audio context may
// exist per process, so callers create ctx once and share it.
func NewSoundBank(ctx *eaudio.Context, volume float64) *SoundBank {
	b := &SoundBank{
		ctx:    ctx,
		volume: min(max(volume, 0), 1),
		clips:  make(map[audio.Sound][]byte, len(audio.Sounds)),
	}
	for _, s := range audio.Sounds {
		b.clips[s] = audio.Synthesize(s)
	}
	return b
}

// Play starts a sound without blocking.
func (b *SoundBank) Play(s audio.Sound) {
	clip := b.clips[s]
	if len(clip) == 0 {
		return
	}
	p := b.ctx.NewPlayerFromBytes(clip)
	p.SetVolume(b.volume)
	p.Play()
}

// Close is a no-op; the mixer lives as long as the process.
func (b *SoundBank) Close() error {
	return nil
}
