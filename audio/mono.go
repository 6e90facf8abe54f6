// SPDX-License-Identifier: EPL-2.0

package audio

// Mono averages all channels into a single channel. A mono input is cloned.
func Mono(buf *Buffer) *Buffer {
	channels := len(buf.data)
	if channels == 1 {
		return buf.Clone()
	}

	out := &Buffer{
		sampleRate: buf.sampleRate,
		frames:     buf.frames,
		data:       [][]float64{make([]float64, buf.frames)},
	}
	dst := out.data[0]

	switch channels {
	case 2:
		left, right := buf.data[0], buf.data[1]
		for f := range dst {
			dst[f] = (left[f] + right[f]) * 0.5
		}
	default:
		inv := 1.0 / float64(channels)
		for _, ch := range buf.data {
			for f, s := range ch {
				dst[f] += s
			}
		}
		for f := range dst {
			dst[f] *= inv
		}
	}

	return out
}
