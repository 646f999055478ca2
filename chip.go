package chipsynth

import (
	"sync"

	clone "github.com/huandu/go-clone/generic"
)

// ChipParameters details how a chip is intended to operate. The derived
// fields (timestep, tick frames) are reseated by the setters, so they are
// always consistent with the sample rate and tick rate.
type ChipParameters struct {
	samplerate int
	timestep   float32 // seconds per sample

	// Amplitude is the global output scale applied while mixing. It
	// affects all channels, is caller controlled and deliberately not
	// clamped.
	Amplitude float32

	tickRate   float32 // ticks per second
	tickFrames float32 // frames per tick, may be fractional
}

// NewChipParameters creates a new set of chip parameters. tickRate is in
// ticks per second.
func NewChipParameters(samplerate int, amplitude, tickRate float32) ChipParameters {
	return ChipParameters{
		samplerate: samplerate,
		timestep:   1 / float32(samplerate),
		Amplitude:  amplitude,
		tickRate:   tickRate,
		tickFrames: float32(samplerate) / tickRate,
	}
}

// SetSampleRate sets the sample rate of the chip in hertz.
func (p *ChipParameters) SetSampleRate(samplerate int) {
	p.samplerate = samplerate
	p.timestep = 1 / float32(samplerate)
	p.updateTickFrames()
}

// SetTickRate sets the tick rate of the chip in ticks per second.
func (p *ChipParameters) SetTickRate(tickRate float32) {
	p.tickRate = tickRate
	p.updateTickFrames()
}

func (p *ChipParameters) updateTickFrames() {
	p.tickFrames = float32(p.samplerate) / p.tickRate
}

// SampleRate returns the sample rate of the chip in hertz.
func (p *ChipParameters) SampleRate() int { return p.samplerate }

// TickRate returns the tick rate of the chip in ticks per second.
func (p *ChipParameters) TickRate() float32 { return p.tickRate }

// TickFrames returns the number of frames in a single tick. It is
// fractional when the tick rate does not divide the sample rate evenly.
// Hosts that schedule commands on tick boundaries read this.
func (p *ChipParameters) TickFrames() float32 { return p.tickFrames }

// GenerationResult reports how much audio a Generate call produced.
type GenerationResult struct {
	// Generated is the number of samples written. Always even, two
	// samples per stereo frame.
	Generated int

	// RemainingSamples is how many samples are still owed before the
	// current tick boundary. Non-zero means the tick was only partially
	// filled and the host should call Generate again before issuing the
	// next tick's commands.
	RemainingSamples int
}

// Chip is a bank of oscillator channels mixed into a single stereo output.
// A Chip is created with a fixed channel count for its lifetime.
//
// A Chip is not safe for concurrent use: the host drives it from one
// goroutine, sending commands between Generate calls.
type Chip struct {
	Params ChipParameters

	channels []channel

	// How many frames are left in the current tick. The fractional part
	// carries between Generate calls so the long-run tick length stays
	// exactly samplerate/tickRate.
	remainingFrames float32

	// Per-channel buffers the parallel render step writes into before
	// mixing. Reused between calls.
	scratch [][]float32
}

// NewChip creates a chip with channelCount channels. Channels start silent
// (amplitude 0) at 440Hz, centered.
func NewChip(channelCount int, params ChipParameters) *Chip {
	chip := &Chip{
		Params:   params,
		channels: make([]channel, channelCount),
		scratch:  make([][]float32, channelCount),
	}
	for i := range chip.channels {
		chip.channels[i] = newChannel(defaultNoise)
	}
	return chip
}

// SetNoiseSource replaces the noise source of every channel. A chip with
// more than one channel calls the source from multiple goroutines, so src
// must be safe for concurrent use. Pass nil to restore the default source.
func (c *Chip) SetNoiseSource(src NoiseSource) {
	if src == nil {
		src = defaultNoise
	}
	for i := range c.channels {
		c.channels[i].noise = src
	}
}

// Clone returns a deep copy of the chip. A host can render lookahead audio
// on the copy without disturbing the live instance. The noise source is
// shared by reference.
func (c *Chip) Clone() *Chip {
	return clone.Clone(c)
}

// Generate fills the start of buffer with interleaved stereo samples, up to
// the end of the current tick, and reports how many samples it wrote and
// how many are still owed before the tick boundary.
//
// If RemainingSamples is non-zero the tick was not completed. Commands can
// still be sent at that point, but they land mid-tick.
func (c *Chip) Generate(buffer []float32) (GenerationResult, error) {
	if len(buffer)%2 != 0 {
		return GenerationResult{}, &UnevenBufferError{Length: len(buffer)}
	}

	timestep := c.Params.timestep

	// A new tick starts lazily, only once the previous one is exhausted.
	if c.remainingFrames < 1 {
		c.remainingFrames += c.Params.tickFrames
	}

	frames := int(floor32(c.remainingFrames))
	if bufFrames := len(buffer) / 2; frames > bufFrames {
		frames = bufFrames
	}

	// Render each channel on its own goroutine. Channels share no state,
	// so the only synchronization is the join before mixing.
	var wg sync.WaitGroup
	for i := range c.channels {
		if len(c.scratch[i]) < frames*2 {
			c.scratch[i] = make([]float32, frames*2)
		}
		wg.Add(1)
		go func(ch *channel, out []float32) {
			defer wg.Done()
			for f := 0; f < frames; f++ {
				out[f*2], out[f*2+1] = ch.sample()
				ch.advance(timestep)
			}
		}(&c.channels[i], c.scratch[i])
	}
	wg.Wait()

	mixDown(buffer[:frames*2], c.scratch, c.Params.Amplitude)

	// Keeps only the fractional part of tickFrames for the next call.
	c.remainingFrames -= float32(frames)

	return GenerationResult{
		Generated:        frames * 2,
		RemainingSamples: int(floor32(c.remainingFrames)) * 2,
	}, nil
}

// SendCommand executes a command on the given channel. The chip state is
// untouched if the channel index or the command is invalid.
func (c *Chip) SendCommand(cmd Command, channel int) error {
	if channel < 0 || channel >= len(c.channels) {
		return &InvalidChannelError{Channel: channel, MaxChannels: len(c.channels)}
	}
	return c.channels[channel].executeCommand(cmd)
}

// NumChannels returns the fixed channel count of the chip.
func (c *Chip) NumChannels() int {
	return len(c.channels)
}
