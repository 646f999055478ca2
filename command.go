package chipsynth

// Command is a single instruction for a single channel. The command set is
// closed: every variant is a struct in this file and executeCommand handles
// all of them exhaustively.
type Command interface {
	isCommand()
}

// SetWaveform selects the waveform of a channel.
//
//	Index | Waveform
//	------+---------------
//	    0 | Sine
//	    1 | Triangle
//	    2 | Rectified sine
//	    3 | Saw
//	    4 | Square
//	    5 | Pulse (25% duty)
//	    6 | Noise
//	    7 | Custom
type SetWaveform struct {
	Index int
}

// SetFrequency sets the frequency of a channel in hertz, effective
// immediately. Negative frequencies are clamped to zero.
type SetFrequency struct {
	Hz float32
}

// SetAmplitude sets the amplitude of a channel on a scale of 0..1. The
// audible level catches up at the fixed declick ramp rate.
type SetAmplitude struct {
	Amplitude float32
}

// SetPanning sets the panning of a channel on a scale of -1..1. The audible
// position catches up at the fixed declick ramp rate.
type SetPanning struct {
	Panning float32
}

// SetCustomWaveform replaces the custom waveform table of a channel. The
// table is only audible while the channel waveform is WaveCustom.
type SetCustomWaveform struct {
	Data CustomWaveform
}

// SetPhase sets the oscillator phase directly. The value is folded into
// [0,1), so negative and out-of-range phases are accepted.
type SetPhase struct {
	Phase float32
}

// ForceSetAmplitude sets the amplitude instantly, bypassing the declick
// ramp. Useful for hard restarts where a click is acceptable or intended.
type ForceSetAmplitude struct {
	Amplitude float32
}

// ForceSetPanning sets the panning instantly, bypassing the declick ramp.
type ForceSetPanning struct {
	Panning float32
}

// FrequencySlide glides the frequency from its current value toward Target
// at Rate hertz per second.
type FrequencySlide struct {
	Target float32
	Rate   float32
}

// AmplitudeSlide glides the amplitude from its current value toward Target
// at Rate units per second.
type AmplitudeSlide struct {
	Target float32
	Rate   float32
}

// PanningSlide glides the panning from its current value toward Target at
// Rate units per second.
type PanningSlide struct {
	Target float32
	Rate   float32
}

func (SetWaveform) isCommand()       {}
func (SetFrequency) isCommand()      {}
func (SetAmplitude) isCommand()      {}
func (SetPanning) isCommand()        {}
func (SetCustomWaveform) isCommand() {}
func (SetPhase) isCommand()          {}
func (ForceSetAmplitude) isCommand() {}
func (ForceSetPanning) isCommand()   {}
func (FrequencySlide) isCommand()    {}
func (AmplitudeSlide) isCommand()    {}
func (PanningSlide) isCommand()      {}
