package audio

import "math"

// Synthesize renders a sound effect as 16-bit LE stereo PCM at SampleRate.
// The output is the same for every call with the same sound.
func Synthesize(s Sound) []byte {
	switch s {
	case SoundPop:
		return genPop()
	case SoundMiss:
		return genMiss()
	case SoundGameOver:
		return genGameOver()
	case SoundIntensity:
		return genIntensity()
	}
	return nil
}

// genPop: short FM pop with a rising pitch and a noise click on attack.
func genPop() []byte {
	n := int(0.11 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(4242)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.45, 0.0, 0.1)
		freq := 520 + 900*p
		s := fm(t, freq, 2.0, 3.0*env) * env * 0.5
		if p < 0.05 {
			s += lcg(&seed) * (1 - p/0.05) * 0.25
		}
		putStereo16(buf, i, softSat(s))
	}
	return buf
}

// genMiss: dull low thud.
func genMiss() []byte {
	n := int(0.08 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 9)
		s := math.Sin(2*math.Pi*(140-60*p)*t) * env * 0.35
		putStereo16(buf, i, softSat(s))
	}
	return buf
}

// genGameOver: three falling notes ending on a long low tone.
func genGameOver() []byte {
	freqs := []float64{392.00, 311.13, 261.63, 196.00} // G4 Eb4 C4 G3
	noteLen := SampleRate * 160 / 1000
	tail := int(0.35 * SampleRate)
	total := len(freqs)*noteLen + tail
	mix := make([]float64, total)

	for fi, freq := range freqs {
		start := fi * noteLen
		dur := noteLen
		if fi == len(freqs)-1 {
			dur += tail
		}
		for j := 0; j < dur; j++ {
			t := float64(j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.02, 0.3, 0.4, 0.4)
			mix[start+j] += fm(t, freq, 1.0, 1.5*env) * env * 0.4
		}
	}

	buf := makeBuf(total)
	for i, s := range mix {
		putStereo16(buf, i, softSat(s))
	}
	return buf
}

// genIntensity: a short square-ish blip for dial clicks.
func genIntensity() []byte {
	n := int(0.05 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.05, 0.3, 0.3, 0.4)
		s := math.Sin(2 * math.Pi * 1320 * t)
		s += math.Sin(2*math.Pi*3960*t) / 3
		putStereo16(buf, i, softSat(s*env*0.25))
	}
	return buf
}

// makeBuf allocates a stereo 16-bit buffer for n frames.
func makeBuf(n int) []byte { return make([]byte, n*bytesPerFrame) }

// putStereo16 writes a [-1,1] sample as int16 LE to both channels at frame i.
func putStereo16(buf []byte, i int, sample float64) {
	v := int16(math.Max(-1, math.Min(1, sample)) * math.MaxInt16)
	buf[i*4] = byte(v)
	buf[i*4+1] = byte(v >> 8)
	buf[i*4+2] = byte(v)
	buf[i*4+3] = byte(v >> 8)
}

// softSat applies gentle saturation instead of hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}
