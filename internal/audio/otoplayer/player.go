// Package otoplayer plays synthesized sound effects on the system audio
// device through oto. It is kept apart from package audio so front ends
// that bring their own audio stack do not link the device code.
package otoplayer

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/vovakirdan/bottlepop/internal/audio"
)

// maxVoices caps simultaneous sounds so rapid pops don't clip.
const maxVoices = 6

// Player plays sound effects through the system audio device.
// It implements audio.Player.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	bank   map[audio.Sound][]byte
	voices atomic.Int32
	closed atomic.Bool
	wg     sync.WaitGroup
}

// New opens the audio device and pre-renders every sound.
// volume is clamped to [0, 1].
func New(volume float64) (*Player, error) {
	ctx, ready, err := oto.NewContext(audio.SampleRate, audio.ChannelCount, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, fmt.Errorf("otoplayer: cannot open device: %w", err)
	}

	return &Player{
		ctx:    ctx,
		ready:  ready,
		volume: clampVolume(volume),
		bank:   renderBank(),
	}, nil
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}

// renderBank synthesizes every sound once.
func renderBank() map[audio.Sound][]byte {
	bank := make(map[audio.Sound][]byte, len(audio.Sounds))
	for _, s := range audio.Sounds {
		bank[s] = audio.Synthesize(s)
	}
	return bank
}

// Play starts a sound and returns immediately. Sounds requested before
// the device is ready, or beyond maxVoices, are dropped.
func (p *Player) Play(s audio.Sound) {
	if p.closed.Load() {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}

	data := p.bank[s]
	if len(data) == 0 {
		return
	}
	if p.voices.Add(1) > maxVoices {
		p.voices.Add(-1)
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.voices.Add(-1)

		player := p.ctx.NewPlayer(bytes.NewReader(data))
		player.SetVolume(p.volume)
		player.Play()
		for player.IsPlaying() && !p.closed.Load() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// Close stops accepting sounds, waits for playing ones to stop and
// suspends the device.
func (p *Player) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	p.wg.Wait()
	if err := p.ctx.Suspend(); err != nil {
		return fmt.Errorf("otoplayer: cannot suspend device: %w", err)
	}
	return nil
}
