// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"
	"strings"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

// Curve maps fade progress in [0, 1] to a gain in [0, 1]. Every curve is
// monotonic with f(0) = 0 and f(1) = 1.
type Curve int

const (
	CurveLinear Curve = iota
	CurveExponential
	CurveLogarithmic
	CurveSCurve
)

var curveNames = map[Curve]string{
	CurveLinear:      "linear",
	CurveExponential: "exponential",
	CurveLogarithmic: "logarithmic",
	CurveSCurve:      "scurve",
}

func (c Curve) String() string {
	if name, ok := curveNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Curve(%d)", int(c))
}

// ParseCurve resolves a curve by name. "s-curve" and "s_curve" are accepted
// as aliases of "scurve".
func ParseCurve(name string) (Curve, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	for c, n := range curveNames {
		if n == key {
			return c, nil
		}
	}

	return 0, fmt.Errorf("fade curve %q: %w", name, audio.ErrInvalidParameter)
}

// Gain evaluates the curve at t.
func (c Curve) Gain(t float64) float64 {
	switch c {
	case CurveExponential:
		return t * t
	case CurveLogarithmic:
		return math.Sqrt(t)
	case CurveSCurve:
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - 2*(1-t)*(1-t)
	default:
		return t
	}
}

// FadeParams configures Fade. Durations are in seconds.
type FadeParams struct {
	In    float64
	Out   float64
	Curve Curve
}

// Validate reports whether p can be applied to any buffer.
func (p FadeParams) Validate() error {
	if !utils.IsFinite(p.In) || p.In < 0 {
		return fmt.Errorf("fade in duration %v: %w", p.In, audio.ErrInvalidParameter)
	}
	if !utils.IsFinite(p.Out) || p.Out < 0 {
		return fmt.Errorf("fade out duration %v: %w", p.Out, audio.ErrInvalidParameter)
	}
	if _, ok := curveNames[p.Curve]; !ok {
		return fmt.Errorf("fade curve %v: %w", p.Curve, audio.ErrInvalidParameter)
	}

	return nil
}

// Fade ramps the amplitude up over the first In seconds and down over the
// last Out seconds. Fade lengths are clamped to the buffer and overlapping
// fades multiply. A zero-length fade leaves its edge untouched.
func Fade(buf *audio.Buffer, p FadeParams) (*audio.Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	frames := buf.Frames()
	rate := float64(buf.SampleRate())
	// Clamp before converting; a huge duration would overflow int.
	fadeIn := int(min(math.Floor(p.In*rate), float64(frames)))
	fadeOut := int(min(math.Floor(p.Out*rate), float64(frames)))

	if fadeIn == 0 && fadeOut == 0 {
		return buf.Clone(), nil
	}

	gains := make([]float64, frames)
	for i := range gains {
		gains[i] = 1
	}
	for i := range fadeIn {
		gains[i] = p.Curve.Gain(float64(i) / float64(fadeIn))
	}
	for i := frames - fadeOut; i < frames; i++ {
		gains[i] *= p.Curve.Gain(float64(frames-i) / float64(fadeOut))
	}

	out := newBufferLike(buf, buf.Channels())
	dst := channelData(out)
	for c, src := range channelData(buf) {
		for i, s := range src {
			dst[c][i] = s * gains[i]
		}
	}

	return out, nil
}
