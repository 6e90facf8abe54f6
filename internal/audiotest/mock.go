// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"math"
)

// Waveform returns the sample value for a frame index and channel.
type Waveform func(frame int, channel int) float64

// Sine returns a waveform generating a sine tone on every channel.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(frame int, channel int) float64 {
		t := float64(frame) / float64(sampleRate)
		return math.Sin(2 * math.Pi * frequency * t)
	}
}

// Constant returns a waveform with a fixed value.
func Constant(value float64) Waveform {
	return func(frame int, channel int) float64 { return value }
}

// Ramp returns a waveform counting frame*step, offset per channel by
// channel*offset. Useful for checking that samples keep their order.
func Ramp(step, offset float64) Waveform {
	return func(frame int, channel int) float64 {
		return float64(frame)*step + float64(channel)*offset
	}
}

// Channels renders channels × frames samples of w.
func Channels(channels, frames int, w Waveform) [][]float64 {
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, frames)
		for f := range out[c] {
			out[c][f] = w(f, c)
		}
	}

	return out
}

// ErrMockRead is returned by a MockSource configured to fail.
var ErrMockRead = errors.New("mock read failure")

// MockSource is a test helper that generates audio data for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     Waveform
	failAfter    int // fail once this many frames were generated; -1 never
	closed       bool
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
func NewMockSource(sampleRate, channels, totalSamples int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
		failAfter:    -1,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Constant(0))
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Sine(sampleRate, frequency))
}

// FailAfter makes ReadSamples return ErrMockRead once frames were produced.
func (m *MockSource) FailAfter(frames int) *MockSource {
	m.failAfter = frames
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAfter >= 0 && m.generated >= m.failAfter {
		return 0, ErrMockRead
	}
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)
	if m.failAfter >= 0 {
		framesToWrite = min(framesToWrite, m.failAfter-m.generated)
	}

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = float32(m.waveform(sampleIndex, ch))
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}
