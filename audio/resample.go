// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/audfx/utils"
)

// MaxSampleRate is the highest target rate Resample accepts.
const MaxSampleRate = 768000

// lowPassAlpha is the one-pole coefficient applied before downsampling.
const lowPassAlpha = 0.5

// Resample converts buf to rate using Catmull-Rom cubic interpolation.
// When downsampling, each channel first passes through a one-pole low-pass
// filter. The output holds floor(frames * rate / srcRate) frames.
func Resample(buf *Buffer, rate int) (*Buffer, error) {
	if rate <= 0 || rate > MaxSampleRate {
		return nil, fmt.Errorf("target sample rate %d: %w", rate, ErrInvalidParameter)
	}
	if rate == buf.sampleRate {
		return buf.Clone(), nil
	}

	ratio := float64(buf.sampleRate) / float64(rate)
	frames := int(math.Floor(float64(buf.frames) * float64(rate) / float64(buf.sampleRate)))

	out, err := NewBuffer(len(buf.data), frames, rate)
	if err != nil {
		return nil, err
	}

	var filtered []float64
	if ratio > 1 {
		filtered = make([]float64, buf.frames)
	}

	for c, src := range buf.data {
		in := src
		if filtered != nil {
			lowPass(filtered, src)
			in = filtered
		}

		last := len(in) - 1
		at := func(i int) float64 {
			return in[max(0, min(i, last))]
		}

		dst := out.data[c]
		for i := range dst {
			pos := float64(i) * ratio
			idx := int(pos)
			frac := pos - float64(idx)
			dst[i] = utils.CubicInterpolate(at(idx-1), at(idx), at(idx+1), at(idx+2), frac)
		}
	}

	return out, nil
}

// lowPass writes a one-pole low-pass of src into dst. The filter state starts
// at the first sample to avoid a warm-up transient.
func lowPass(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	state := src[0]
	for i, x := range src {
		state = lowPassAlpha*x + (1-lowPassAlpha)*state
		dst[i] = state
	}
}
