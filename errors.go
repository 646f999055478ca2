package chipsynth

import "fmt"

// InvalidWaveformError is returned by SendCommand when a SetWaveform command
// carries an index with no waveform assigned to it. The channel is left
// unchanged.
type InvalidWaveformError struct {
	Waveform int
}

func (e *InvalidWaveformError) Error() string {
	return fmt.Sprintf("invalid waveform index %d, valid indices are 0-7", e.Waveform)
}

// InvalidChannelError is returned by SendCommand when a command addresses a
// channel the chip does not have.
type InvalidChannelError struct {
	Channel     int
	MaxChannels int
}

func (e *InvalidChannelError) Error() string {
	return fmt.Sprintf("cannot address channel %d, chip only has %d channels", e.Channel, e.MaxChannels)
}

// UnevenBufferError is returned by Generate when the buffer cannot hold a
// whole number of interleaved stereo frames. No samples are written.
type UnevenBufferError struct {
	Length int
}

func (e *UnevenBufferError) Error() string {
	return fmt.Sprintf("buffer length %d is odd, cannot hold interleaved stereo frames", e.Length)
}
