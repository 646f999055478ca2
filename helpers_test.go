package chipsynth

import (
	"sync"
	"testing"
)

// newTestChip returns a single-channel chip wired so one frame of output
// exposes the raw channel sample: global amplitude 1, channel amplitude
// forced to 1, panning forced to center.
func newTestChip(t *testing.T, samplerate int, tickRate float32) *Chip {
	t.Helper()

	chip := NewChip(1, NewChipParameters(samplerate, 1, tickRate))
	mustSend(t, chip, ForceSetAmplitude{Amplitude: 1}, 0)
	mustSend(t, chip, ForceSetPanning{Panning: 0}, 0)
	return chip
}

func mustSend(t *testing.T, chip *Chip, cmd Command, channel int) {
	t.Helper()

	if err := chip.SendCommand(cmd, channel); err != nil {
		t.Fatalf("SendCommand failed: %v", err)
	}
}

// seqNoise is a deterministic NoiseSource. It cycles through vals and
// counts how many samples were drawn.
type seqNoise struct {
	mu    sync.Mutex
	vals  []float32
	pos   int
	calls int
}

func (s *seqNoise) next() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.vals[s.pos%len(s.vals)]
	s.pos++
	s.calls++
	return v
}

func (s *seqNoise) numCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func approxEqual(a, b, eps float32) bool {
	return abs32(a-b) <= eps
}
