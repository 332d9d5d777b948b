package otoplayer

import (
	"testing"

	"github.com/vovakirdan/bottlepop/internal/audio"
)

var _ audio.Player = (*Player)(nil)

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.6, 0.6},
		{1, 1},
		{2, 1},
	}
	for _, tc := range tests {
		if got := clampVolume(tc.in); got != tc.expected {
			t.Errorf("clampVolume(%g) = %g, expected %g", tc.in, got, tc.expected)
		}
	}
}

func TestRenderBankCoversEverySound(t *testing.T) {
	bank := renderBank()

	if len(bank) != len(audio.Sounds) {
		t.Fatalf("bank has %d sounds, expected %d", len(bank), len(audio.Sounds))
	}
	for _, s := range audio.Sounds {
		if len(bank[s]) == 0 {
			t.Errorf("%s: empty sample", s)
		}
	}
}
