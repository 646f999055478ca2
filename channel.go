package chipsynth

import "math"

const (
	// rampRate is the fixed rate in units/second at which the audible
	// amplitude and panning chase their current values. Full scale takes
	// 2ms, short enough to be inaudible as a fade but long enough to
	// remove clicks.
	rampRate = 500.0

	// brownianLeak is the mean-reversion strength of the noise random
	// walk. Zero would be a pure brownian walk.
	brownianLeak = 0.5
)

// channel holds everything needed to sample one voice.
type channel struct {
	// period is the progress along the waveform on a scale of 0..1. For
	// the noise waveform it instead counts progress toward the next noise
	// sample and can exceed 1 before being folded back.
	period         float32
	waveform       int
	customWaveform CustomWaveform

	// The current values driving period growth and mixing.
	frequency float32
	amplitude float32
	panning   float32

	// Slide targets and the rates (units/second) at which the current
	// values approach them.
	frequencySlideTarget float32
	amplitudeSlideTarget float32
	panningSlideTarget   float32
	frequencyRate        float32
	amplitudeRate        float32
	panningRate          float32

	// The audible amplitude and panning. They chase the current values at
	// rampRate so command edges never reach the output directly.
	rampedAmplitude float32
	rampedPanning   float32

	// The last noise value generated. Sampled until the period elapses.
	noiseSample float32

	noise NoiseSource
}

func newChannel(noise NoiseSource) channel {
	return channel{
		frequency:            440,
		frequencySlideTarget: 440,
		noise:                noise,
	}
}

// sample returns the left and right output of the channel in its current
// state.
func (c *channel) sample() (left, right float32) {
	var out float32
	switch c.waveform {
	case WaveSine:
		out = sine(c.period)
	case WaveTriangle:
		out = triangle(c.period)
	case WaveRecSine:
		out = recSine(c.period)
	case WaveSaw:
		out = saw(c.period)
	case WaveSquare:
		out = square(c.period)
	case WavePulse:
		out = pulse(c.period)
	case WaveNoise:
		out = c.noiseSample
	case WaveCustom:
		out = custom(c.period, &c.customWaveform)
	}
	out *= c.rampedAmplitude

	// Clamped linear pan law: the louder side stays at unity gain and the
	// other side is attenuated, all the way to silence at full pan. Not
	// constant power.
	left = out * min(1-c.rampedPanning, 1)
	right = out * min(1+c.rampedPanning, 1)
	return left, right
}

// advance moves the channel state forward by step seconds.
func (c *channel) advance(step float32) {
	c.period += c.frequency * step

	if c.waveform == WaveNoise {
		// Leaky random walk. Each wrap consumes exactly one value from
		// the noise source; at high frequencies a single step can wrap
		// more than once.
		for c.period >= 1 {
			c.noiseSample = (c.noiseSample + c.noise()) * (1 - brownianLeak*step)
			c.period--
		}
	}

	c.period -= floor32(c.period)

	// Ramp before slide: the audible values chase the pre-slide current
	// values of the previous step, so a slide is smoothed twice.
	c.rampedAmplitude = approach(c.rampedAmplitude, c.amplitude, rampRate*step)
	c.rampedPanning = approach(c.rampedPanning, c.panning, rampRate*step)

	c.frequency = approach(c.frequency, c.frequencySlideTarget, c.frequencyRate*step)
	c.amplitude = approach(c.amplitude, c.amplitudeSlideTarget, c.amplitudeRate*step)
	c.panning = approach(c.panning, c.panningSlideTarget, c.panningRate*step)
}

// executeCommand applies cmd to the channel. Values are clamped to their
// legal ranges here, never inside sample or advance.
func (c *channel) executeCommand(cmd Command) error {
	switch cmd := cmd.(type) {
	case SetWaveform:
		if cmd.Index < 0 || cmd.Index > WaveCustom {
			return &InvalidWaveformError{Waveform: cmd.Index}
		}
		c.waveform = cmd.Index
	case SetFrequency:
		hz := max(cmd.Hz, 0)
		c.frequency = hz
		c.frequencySlideTarget = hz
	case SetAmplitude:
		v := clamp(cmd.Amplitude, 0, 1)
		c.amplitude = v
		c.amplitudeSlideTarget = v
	case SetPanning:
		v := clamp(cmd.Panning, -1, 1)
		c.panning = v
		c.panningSlideTarget = v
	case SetCustomWaveform:
		for i, s := range cmd.Data {
			c.customWaveform[i] = clamp(s, -1, 1)
		}
	case SetPhase:
		// Fold into [0,1) so the custom waveform index stays in range for
		// negative phases.
		c.period = cmd.Phase - floor32(cmd.Phase)
	case ForceSetAmplitude:
		v := clamp(cmd.Amplitude, 0, 1)
		c.amplitude = v
		c.amplitudeSlideTarget = v
		c.rampedAmplitude = v
	case ForceSetPanning:
		v := clamp(cmd.Panning, -1, 1)
		c.panning = v
		c.panningSlideTarget = v
		c.rampedPanning = v
	case FrequencySlide:
		c.frequencySlideTarget = max(cmd.Target, 0)
		c.frequencyRate = cmd.Rate
	case AmplitudeSlide:
		c.amplitudeSlideTarget = clamp(cmd.Target, 0, 1)
		c.amplitudeRate = cmd.Rate
	case PanningSlide:
		c.panningSlideTarget = clamp(cmd.Target, -1, 1)
		c.panningRate = cmd.Rate
	}
	return nil
}

// approach moves value toward target by at most |maxDelta|.
func approach(value, target, maxDelta float32) float32 {
	return value + clamp(target-value, -abs32(maxDelta), abs32(maxDelta))
}

func floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}
