package chipsynth

import (
	"math"
	"math/rand/v2"
)

// CustomWidth is the number of samples in a custom waveform.
const CustomWidth = 32

// CustomWaveform is one cycle of caller-supplied sample data. Entries are
// clamped to [-1,1] when the table is installed on a channel.
type CustomWaveform [CustomWidth]float32

// Waveform indices understood by the SetWaveform command.
const (
	WaveSine = iota
	WaveTriangle
	WaveRecSine
	WaveSaw
	WaveSquare
	WavePulse
	WaveNoise
	WaveCustom
)

// The waveform functions map a period in [0,1) to a sample in [-1,1].

func sine(period float32) float32 {
	return float32(math.Sin(float64(period) * 2 * math.Pi))
}

func triangle(period float32) float32 {
	return 1 - 4*abs32(period-0.5)
}

// recSine is not a true rectified sine: the first half cycle is rescaled to
// span -1..1 and the second half is held at -1.
func recSine(period float32) float32 {
	if period < 0.5 {
		return sine(period)*2 - 1
	}
	return -1
}

func saw(period float32) float32 {
	return period*2 - 1
}

func square(period float32) float32 {
	if period < 0.5 {
		return 1
	}
	return -1
}

// pulse is a square wave with a 25% duty cycle.
func pulse(period float32) float32 {
	if period < 0.25 {
		return 1
	}
	return -1
}

// custom requires period < 1, otherwise the table index is out of range.
func custom(period float32, data *CustomWaveform) float32 {
	return data[int(period*CustomWidth)]
}

// NoiseSource returns uniformly distributed random samples in [-1,1]. A
// chip renders its channels concurrently, so a source installed on a chip
// with more than one channel must be safe for concurrent use.
type NoiseSource func() float32

// defaultNoise is the NoiseSource chips start with. The top-level rand/v2
// functions are safe for concurrent use.
func defaultNoise() float32 {
	return rand.Float32()*2 - 1
}

func abs32(v float32) float32 {
	return max(v, -v)
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
