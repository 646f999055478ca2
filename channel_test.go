package chipsynth

import (
	"errors"
	"testing"
)

func TestForceSetAmplitudeIsInstant(t *testing.T) {
	c := newChannel(defaultNoise)
	if err := c.executeCommand(SetWaveform{Index: WaveSquare}); err != nil {
		t.Fatal(err)
	}
	if err := c.executeCommand(ForceSetAmplitude{Amplitude: 0.8}); err != nil {
		t.Fatal(err)
	}

	// No advance has happened, the new amplitude must already be audible.
	l, r := c.sample()
	if !approxEqual(l, 0.8, waveEps) || !approxEqual(r, 0.8, waveEps) {
		t.Errorf("expected (0.8, 0.8) immediately, got (%v, %v)", l, r)
	}
}

func TestSetAmplitudeRampsAtFixedRate(t *testing.T) {
	c := newChannel(defaultNoise)
	c.executeCommand(SetWaveform{Index: WaveSquare})
	c.executeCommand(SetAmplitude{Amplitude: 1})

	if c.amplitude != 1 {
		t.Fatalf("current amplitude should jump to 1, got %v", c.amplitude)
	}
	if c.rampedAmplitude != 0 {
		t.Fatalf("audible amplitude should still be 0, got %v", c.rampedAmplitude)
	}

	// rampRate is 500/s so a 1ms step covers half of full scale.
	c.advance(0.001)
	if !approxEqual(c.rampedAmplitude, 0.5, waveEps) {
		t.Errorf("after 1ms expected audible amplitude 0.5, got %v", c.rampedAmplitude)
	}
	c.advance(0.001)
	if !approxEqual(c.rampedAmplitude, 1, waveEps) {
		t.Errorf("after 2ms expected audible amplitude 1, got %v", c.rampedAmplitude)
	}
}

func TestRampTracksPreSlideValue(t *testing.T) {
	c := newChannel(defaultNoise)
	c.executeCommand(AmplitudeSlide{Target: 1, Rate: 1000})

	// The slide moves the current amplitude to 1 within this step, but the
	// audible amplitude chases the value from before the slide ran.
	c.advance(0.001)
	if !approxEqual(c.amplitude, 1, waveEps) {
		t.Fatalf("slide should reach 1 in one step, got %v", c.amplitude)
	}
	if c.rampedAmplitude != 0 {
		t.Errorf("audible amplitude must lag one step behind the slide, got %v", c.rampedAmplitude)
	}

	c.advance(0.001)
	if !approxEqual(c.rampedAmplitude, 0.5, waveEps) {
		t.Errorf("expected audible amplitude 0.5 on the next step, got %v", c.rampedAmplitude)
	}
}

func TestAmplitudeSlideIsLinear(t *testing.T) {
	c := newChannel(defaultNoise)
	c.executeCommand(ForceSetAmplitude{Amplitude: 0})
	c.executeCommand(AmplitudeSlide{Target: 1, Rate: 0.25})

	want := []float32{0.25, 0.5, 0.75, 1, 1}
	for i, w := range want {
		c.advance(1)
		if !approxEqual(c.amplitude, w, waveEps) {
			t.Errorf("step %d: amplitude = %v, want %v", i, c.amplitude, w)
		}
	}
}

func TestFrequencySlide(t *testing.T) {
	c := newChannel(defaultNoise)
	c.executeCommand(SetFrequency{Hz: 100})
	c.executeCommand(FrequencySlide{Target: 200, Rate: 50})

	want := []float32{150, 200, 200}
	for i, w := range want {
		c.advance(1)
		if !approxEqual(c.frequency, w, waveEps) {
			t.Errorf("step %d: frequency = %v, want %v", i, c.frequency, w)
		}
	}
}

func TestSetFrequencyIsInstant(t *testing.T) {
	c := newChannel(defaultNoise)
	c.executeCommand(SetFrequency{Hz: 220})

	if c.frequency != 220 || c.frequencySlideTarget != 220 {
		t.Fatalf("frequency and target should both be 220, got %v and %v",
			c.frequency, c.frequencySlideTarget)
	}

	// With value and target equal the slide relaxation is a no-op.
	c.advance(0.01)
	if c.frequency != 220 {
		t.Errorf("frequency drifted to %v after advance", c.frequency)
	}
}

func TestBrownianNoiseWraps(t *testing.T) {
	src := &seqNoise{vals: []float32{1}}
	c := newChannel(src.next)
	c.executeCommand(SetWaveform{Index: WaveNoise})
	c.executeCommand(SetFrequency{Hz: 3})

	// One second at 3Hz wraps the period three times, drawing exactly one
	// noise sample per wrap. With a unit step the leak factor is
	// 1-brownianLeak = 0.5: 0 -> 0.5 -> 0.75 -> 0.875.
	c.advance(1)
	if got := src.numCalls(); got != 3 {
		t.Fatalf("expected 3 noise samples drawn, got %d", got)
	}
	if !approxEqual(c.noiseSample, 0.875, waveEps) {
		t.Errorf("noise sample = %v, want 0.875", c.noiseSample)
	}
	if c.period < 0 || c.period >= 1 {
		t.Errorf("period %v not folded into [0,1)", c.period)
	}

	// No wrap, no regeneration: the sample is held.
	c.advance(0.01)
	if got := src.numCalls(); got != 3 {
		t.Errorf("noise regenerated without a phase wrap, %d calls", got)
	}
}

func TestSetPhaseNormalizes(t *testing.T) {
	cases := []struct {
		phase float32
		want  float32
	}{
		{0.25, 0.25},
		{1.5, 0.5},
		{-0.25, 0.75},
		{-2, 0},
		{3, 0},
	}

	c := newChannel(defaultNoise)
	for _, tc := range cases {
		c.executeCommand(SetPhase{Phase: tc.phase})
		if !approxEqual(c.period, tc.want, waveEps) {
			t.Errorf("SetPhase(%v): period = %v, want %v", tc.phase, c.period, tc.want)
		}
		if c.period < 0 || c.period >= 1 {
			t.Errorf("SetPhase(%v): period %v outside [0,1)", tc.phase, c.period)
		}
	}
}

func TestInvalidWaveformRejected(t *testing.T) {
	c := newChannel(defaultNoise)
	c.executeCommand(SetWaveform{Index: WaveSquare})

	for _, idx := range []int{8, 100, -1} {
		err := c.executeCommand(SetWaveform{Index: idx})
		var werr *InvalidWaveformError
		if !errors.As(err, &werr) {
			t.Fatalf("SetWaveform(%d): expected InvalidWaveformError, got %v", idx, err)
		}
		if werr.Waveform != idx {
			t.Errorf("error reports waveform %d, want %d", werr.Waveform, idx)
		}
		if c.waveform != WaveSquare {
			t.Errorf("channel waveform changed to %d on invalid command", c.waveform)
		}
	}
}

func TestCommandClamping(t *testing.T) {
	cases := []struct {
		name string
		cmd  Command
		got  func(*channel) float32
		want float32
	}{
		{"amplitude high", SetAmplitude{Amplitude: 1.5}, func(c *channel) float32 { return c.amplitude }, 1},
		{"amplitude low", SetAmplitude{Amplitude: -0.5}, func(c *channel) float32 { return c.amplitude }, 0},
		{"panning high", SetPanning{Panning: 2}, func(c *channel) float32 { return c.panning }, 1},
		{"panning low", SetPanning{Panning: -3}, func(c *channel) float32 { return c.panning }, -1},
		{"frequency", SetFrequency{Hz: -10}, func(c *channel) float32 { return c.frequency }, 0},
		{"force amplitude", ForceSetAmplitude{Amplitude: 9}, func(c *channel) float32 { return c.rampedAmplitude }, 1},
		{"force panning", ForceSetPanning{Panning: -9}, func(c *channel) float32 { return c.rampedPanning }, -1},
		{"amplitude slide", AmplitudeSlide{Target: 7, Rate: 1}, func(c *channel) float32 { return c.amplitudeSlideTarget }, 1},
		{"panning slide", PanningSlide{Target: -7, Rate: 1}, func(c *channel) float32 { return c.panningSlideTarget }, -1},
		{"frequency slide", FrequencySlide{Target: -7, Rate: 1}, func(c *channel) float32 { return c.frequencySlideTarget }, 0},
	}

	for _, tc := range cases {
		c := newChannel(defaultNoise)
		if err := c.executeCommand(tc.cmd); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got := tc.got(&c); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCustomWaveformRoundTrip(t *testing.T) {
	var data CustomWaveform
	for i := range data {
		data[i] = float32(i)/CustomWidth*4 - 2 // sweeps -2..2, exercises clamping
	}

	c := newChannel(defaultNoise)
	c.executeCommand(SetCustomWaveform{Data: data})
	c.executeCommand(SetWaveform{Index: WaveCustom})
	c.executeCommand(ForceSetAmplitude{Amplitude: 1})

	for i := 0; i < CustomWidth; i++ {
		c.executeCommand(SetPhase{Phase: float32(i) / CustomWidth})
		want := clamp(data[i], -1, 1)
		if l, r := c.sample(); l != want || r != want {
			t.Errorf("entry %d: got (%v, %v), want %v", i, l, r, want)
		}
	}
}

func TestPanLaw(t *testing.T) {
	cases := []struct {
		panning     float32
		left, right float32
	}{
		{0, 1, 1},
		{-1, 1, 0},
		{1, 0, 1},
		{0.5, 0.5, 1},
		{-0.5, 1, 0.5},
	}

	c := newChannel(defaultNoise)
	c.executeCommand(SetWaveform{Index: WaveSquare})
	c.executeCommand(ForceSetAmplitude{Amplitude: 1})

	for _, tc := range cases {
		c.executeCommand(ForceSetPanning{Panning: tc.panning})
		l, r := c.sample()
		if !approxEqual(l, tc.left, waveEps) || !approxEqual(r, tc.right, waveEps) {
			t.Errorf("panning %v: got (%v, %v), want (%v, %v)", tc.panning, l, r, tc.left, tc.right)
		}
	}
}
