// Package config loads the YAML patch/score files shared by the demo
// commands. A patch describes the initial chip setup, a score schedules
// commands on tick boundaries.
package config

import (
	"fmt"
	"os"

	"github.com/synthlab/chipsynth"
	"gopkg.in/yaml.v3"
)

// Patch describes a chip configuration and an optional score.
type Patch struct {
	SampleRate int     `yaml:"samplerate"`
	Amplitude  float32 `yaml:"amplitude"`
	TickRate   float32 `yaml:"tickrate"`

	Channels []Channel `yaml:"channels"`
	Score    []Event   `yaml:"score"`
}

// Channel is the initial state of one chip channel.
type Channel struct {
	Waveform  string    `yaml:"waveform"`
	Frequency float32   `yaml:"frequency"`
	Amplitude float32   `yaml:"amplitude"`
	Panning   float32   `yaml:"panning"`
	Custom    []float32 `yaml:"custom"`
}

// Event schedules one command on one channel at a tick boundary. Either Set
// or Slide is used, not both.
type Event struct {
	Tick    int `yaml:"tick"`
	Channel int `yaml:"channel"`

	// Set applies a value immediately: one of waveform, frequency,
	// amplitude, force-amplitude, panning, force-panning, phase.
	Set      string  `yaml:"set"`
	Value    float32 `yaml:"value"`
	Waveform string  `yaml:"waveform"`

	// Slide glides toward Target at Rate units/second: one of frequency,
	// amplitude, panning.
	Slide  string  `yaml:"slide"`
	Target float32 `yaml:"target"`
	Rate   float32 `yaml:"rate"`
}

var waveformNames = map[string]int{
	"sine":     chipsynth.WaveSine,
	"triangle": chipsynth.WaveTriangle,
	"recsine":  chipsynth.WaveRecSine,
	"saw":      chipsynth.WaveSaw,
	"square":   chipsynth.WaveSquare,
	"pulse":    chipsynth.WavePulse,
	"noise":    chipsynth.WaveNoise,
	"custom":   chipsynth.WaveCustom,
}

// Load reads a patch file. Missing chip-level fields get usable defaults.
func Load(path string) (*Patch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	patch := &Patch{}
	if err := yaml.Unmarshal(raw, patch); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	patch.applyDefaults()
	return patch, nil
}

// Default returns a built-in two channel demo patch: a square wave walking
// up an A minor arpeggio over a triangle drone.
func Default() *Patch {
	patch := &Patch{
		Channels: []Channel{
			{Waveform: "square", Frequency: 220, Amplitude: 0.6, Panning: -0.3},
			{Waveform: "triangle", Frequency: 110, Amplitude: 0.8, Panning: 0.3},
		},
	}
	for i, hz := range []float32{220, 261.63, 329.63, 440, 329.63, 261.63} {
		patch.Score = append(patch.Score, Event{
			Tick: i * 30, Channel: 0, Set: "frequency", Value: hz,
		})
	}
	patch.applyDefaults()
	return patch
}

func (p *Patch) applyDefaults() {
	if p.SampleRate == 0 {
		p.SampleRate = 44100
	}
	if p.Amplitude == 0 {
		p.Amplitude = 0.5
	}
	if p.TickRate == 0 {
		p.TickRate = 120
	}
	if len(p.Channels) == 0 {
		p.Channels = []Channel{{Waveform: "sine", Frequency: 440, Amplitude: 0.8}}
	}
}

// NewChip builds a chip from the patch and applies the initial channel
// states.
func (p *Patch) NewChip() (*chipsynth.Chip, error) {
	params := chipsynth.NewChipParameters(p.SampleRate, p.Amplitude, p.TickRate)
	chip := chipsynth.NewChip(len(p.Channels), params)

	for i, ch := range p.Channels {
		wave, ok := waveformNames[ch.Waveform]
		if !ok {
			return nil, fmt.Errorf("channel %d: unknown waveform %q", i, ch.Waveform)
		}

		cmds := []chipsynth.Command{
			chipsynth.SetWaveform{Index: wave},
			chipsynth.SetFrequency{Hz: ch.Frequency},
			chipsynth.ForceSetAmplitude{Amplitude: ch.Amplitude},
			chipsynth.ForceSetPanning{Panning: ch.Panning},
		}
		if len(ch.Custom) > 0 {
			if len(ch.Custom) != chipsynth.CustomWidth {
				return nil, fmt.Errorf("channel %d: custom waveform has %d entries, want %d",
					i, len(ch.Custom), chipsynth.CustomWidth)
			}
			var data chipsynth.CustomWaveform
			copy(data[:], ch.Custom)
			cmds = append(cmds, chipsynth.SetCustomWaveform{Data: data})
		}

		for _, cmd := range cmds {
			if err := chip.SendCommand(cmd, i); err != nil {
				return nil, fmt.Errorf("channel %d: %w", i, err)
			}
		}
	}
	return chip, nil
}

// EventsAt returns the score events scheduled for the given tick.
func (p *Patch) EventsAt(tick int) []Event {
	var evs []Event
	for _, ev := range p.Score {
		if ev.Tick == tick {
			evs = append(evs, ev)
		}
	}
	return evs
}

// LastTick returns the tick of the final score event.
func (p *Patch) LastTick() int {
	last := 0
	for _, ev := range p.Score {
		if ev.Tick > last {
			last = ev.Tick
		}
	}
	return last
}

// Command converts the event into a chip command.
func (e Event) Command() (chipsynth.Command, error) {
	switch {
	case e.Set != "" && e.Slide != "":
		return nil, fmt.Errorf("event at tick %d sets both set and slide", e.Tick)
	case e.Set != "":
		switch e.Set {
		case "waveform":
			wave, ok := waveformNames[e.Waveform]
			if !ok {
				return nil, fmt.Errorf("event at tick %d: unknown waveform %q", e.Tick, e.Waveform)
			}
			return chipsynth.SetWaveform{Index: wave}, nil
		case "frequency":
			return chipsynth.SetFrequency{Hz: e.Value}, nil
		case "amplitude":
			return chipsynth.SetAmplitude{Amplitude: e.Value}, nil
		case "force-amplitude":
			return chipsynth.ForceSetAmplitude{Amplitude: e.Value}, nil
		case "panning":
			return chipsynth.SetPanning{Panning: e.Value}, nil
		case "force-panning":
			return chipsynth.ForceSetPanning{Panning: e.Value}, nil
		case "phase":
			return chipsynth.SetPhase{Phase: e.Value}, nil
		}
		return nil, fmt.Errorf("event at tick %d: unknown set %q", e.Tick, e.Set)
	case e.Slide != "":
		switch e.Slide {
		case "frequency":
			return chipsynth.FrequencySlide{Target: e.Target, Rate: e.Rate}, nil
		case "amplitude":
			return chipsynth.AmplitudeSlide{Target: e.Target, Rate: e.Rate}, nil
		case "panning":
			return chipsynth.PanningSlide{Target: e.Target, Rate: e.Rate}, nil
		}
		return nil, fmt.Errorf("event at tick %d: unknown slide %q", e.Tick, e.Slide)
	}
	return nil, fmt.Errorf("event at tick %d has neither set nor slide", e.Tick)
}
