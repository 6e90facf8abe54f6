// SPDX-License-Identifier: EPL-2.0

package effects

import "github.com/ik5/audfx/audio"

// channelData returns the sample slices of every channel of buf.
func channelData(buf *audio.Buffer) [][]float64 {
	out := make([][]float64, buf.Channels())
	for c := range out {
		out[c], _ = buf.Channel(c)
	}

	return out
}

// newBufferLike allocates a zeroed buffer with buf's length and sample rate.
// buf is already valid, so allocation cannot fail for channels >= 1.
func newBufferLike(buf *audio.Buffer, channels int) *audio.Buffer {
	out, _ := audio.NewBuffer(channels, buf.Frames(), buf.SampleRate())
	return out
}
