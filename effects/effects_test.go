// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math"
	"testing"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/internal/audiotest"
)

const epsilon = 1e-9

func mustBuffer(t testing.TB, sampleRate int, channels ...[]float64) *audio.Buffer {
	t.Helper()

	buf, err := audio.FromChannels(sampleRate, channels...)
	if err != nil {
		t.Fatalf("FromChannels() error = %v", err)
	}

	return buf
}

func mustWave(t testing.TB, sampleRate, channels, frames int, w audiotest.Waveform) *audio.Buffer {
	t.Helper()

	return mustBuffer(t, sampleRate, audiotest.Channels(channels, frames, w)...)
}

func mustChannel(t testing.TB, buf *audio.Buffer, index int) []float64 {
	t.Helper()

	ch, err := buf.Channel(index)
	if err != nil {
		t.Fatalf("Channel(%d) error = %v", index, err)
	}

	return ch
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}
