// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Buffer holds decoded audio as one float64 slice per channel.
//
// Every channel holds exactly Frames() samples. Samples are nominally in
// [-1, 1] but are not clamped until they are encoded. Effect stages treat a
// Buffer as immutable and always return a new one.
type Buffer struct {
	sampleRate int
	frames     int
	data       [][]float64
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(channels, frames, sampleRate int) (*Buffer, error) {
	switch {
	case channels < 1:
		return nil, fmt.Errorf("channel count %d: %w", channels, ErrInvalidParameter)
	case frames < 0:
		return nil, fmt.Errorf("frame count %d: %w", frames, ErrInvalidParameter)
	case sampleRate <= 0:
		return nil, fmt.Errorf("sample rate %d: %w", sampleRate, ErrInvalidParameter)
	}

	data := make([][]float64, channels)
	for c := range data {
		data[c] = make([]float64, frames)
	}

	return &Buffer{
		sampleRate: sampleRate,
		frames:     frames,
		data:       data,
	}, nil
}

// FromChannels builds a buffer from per-channel sample slices. The slices
// are copied; all must have the same length.
func FromChannels(sampleRate int, channels ...[]float64) (*Buffer, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("no channels: %w", ErrInvalidParameter)
	}

	frames := len(channels[0])
	for c, ch := range channels {
		if len(ch) != frames {
			return nil, fmt.Errorf("channel %d has %d frames, want %d: %w", c, len(ch), frames, ErrChannelCount)
		}
	}

	buf, err := NewBuffer(len(channels), frames, sampleRate)
	if err != nil {
		return nil, err
	}

	for c, ch := range channels {
		copy(buf.data[c], ch)
	}

	return buf, nil
}

// FromInterleaved de-interleaves frame-ordered samples into a new buffer.
func FromInterleaved(sampleRate, channels int, samples []float64) (*Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("channel count %d: %w", channels, ErrInvalidParameter)
	}
	if len(samples)%channels != 0 {
		return nil, ErrInvalidDstSize
	}

	buf, err := NewBuffer(channels, len(samples)/channels, sampleRate)
	if err != nil {
		return nil, err
	}

	for f := range buf.frames {
		base := f * channels
		for c := range channels {
			buf.data[c][f] = samples[base+c]
		}
	}

	return buf, nil
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return len(b.data) }
func (b *Buffer) Frames() int     { return b.frames }

// Duration returns the length of the buffer in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.frames) / float64(b.sampleRate)
}

// Channel returns the sample slice of channel index. The slice is shared
// with the buffer.
func (b *Buffer) Channel(index int) ([]float64, error) {
	if index < 0 || index >= len(b.data) {
		return nil, fmt.Errorf("channel %d of %d: %w", index, len(b.data), ErrIndexOutOfRange)
	}

	return b.data[index], nil
}

// Interleaved returns the samples in frame order (L R L R ... for stereo).
func (b *Buffer) Interleaved() []float64 {
	channels := len(b.data)
	out := make([]float64, b.frames*channels)

	for c, ch := range b.data {
		for f, s := range ch {
			out[f*channels+c] = s
		}
	}

	return out
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	data := make([][]float64, len(b.data))
	for c, ch := range b.data {
		data[c] = append([]float64(nil), ch...)
	}

	return &Buffer{
		sampleRate: b.sampleRate,
		frames:     b.frames,
		data:       data,
	}
}

// Equal reports whether both buffers have the same layout and bit-identical
// samples.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil || b.sampleRate != other.sampleRate || b.frames != other.frames ||
		len(b.data) != len(other.data) {
		return false
	}

	for c, ch := range b.data {
		for f, s := range ch {
			if s != other.data[c][f] {
				return false
			}
		}
	}

	return true
}

// Slice copies frames [start, end) of every channel into a new buffer.
func (b *Buffer) Slice(start, end int) (*Buffer, error) {
	if start < 0 || end > b.frames || start > end {
		return nil, fmt.Errorf("frames [%d, %d) of %d: %w", start, end, b.frames, ErrInvalidRange)
	}

	out, err := NewBuffer(len(b.data), end-start, b.sampleRate)
	if err != nil {
		return nil, err
	}

	for c, ch := range b.data {
		copy(out.data[c], ch[start:end])
	}

	return out, nil
}
