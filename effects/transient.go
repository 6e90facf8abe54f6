// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"
	"strings"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

const (
	fastFollowerSeconds = 0.0005
	slowFollowerSeconds = 0.020

	transientThreshold = 0.01
	minTransientGain   = 0.1

	// DefaultSensitivity weighs the slow envelope against the fast one.
	DefaultSensitivity = 1.0
)

// TransientParams configures ShapeTransients. Attack and Sustain are in
// [-1, 1]; positive values emphasise, negative values soften.
type TransientParams struct {
	Attack      float64
	Sustain     float64
	Sensitivity float64
}

var transientPresets = map[string]TransientParams{
	"punch":   {Attack: 0.6, Sustain: -0.2, Sensitivity: DefaultSensitivity},
	"soften":  {Attack: -0.6, Sustain: 0.2, Sensitivity: DefaultSensitivity},
	"sustain": {Attack: 0, Sustain: 0.6, Sensitivity: DefaultSensitivity},
	"tight":   {Attack: 0.3, Sustain: -0.6, Sensitivity: DefaultSensitivity},
}

// TransientPreset looks up a preset: punch, soften, sustain or tight.
func TransientPreset(name string) (TransientParams, error) {
	if p, ok := transientPresets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}

	return TransientParams{}, fmt.Errorf("transient preset %q: %w", name, audio.ErrInvalidParameter)
}

// Validate checks that Attack and Sustain are in [-1, 1] and Sensitivity is
// positive.
func (p TransientParams) Validate() error {
	if !utils.IsFinite(p.Attack) || p.Attack < -1 || p.Attack > 1 {
		return fmt.Errorf("transient attack %v: %w", p.Attack, audio.ErrInvalidParameter)
	}
	if !utils.IsFinite(p.Sustain) || p.Sustain < -1 || p.Sustain > 1 {
		return fmt.Errorf("transient sustain %v: %w", p.Sustain, audio.ErrInvalidParameter)
	}
	if !utils.IsFinite(p.Sensitivity) || p.Sensitivity <= 0 {
		return fmt.Errorf("transient sensitivity %v: %w", p.Sensitivity, audio.ErrInvalidParameter)
	}

	return nil
}

// ShapeTransients boosts or cuts attacks and sustain using a fast and a slow
// envelope follower per channel. Any channel whose peak ends up above 1 is
// normalised back to a peak of 1.
func ShapeTransients(buf *audio.Buffer, p TransientParams) (*audio.Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rate := float64(buf.SampleRate())
	fastCoeff := math.Exp(-1 / (fastFollowerSeconds * rate))
	slowCoeff := math.Exp(-1 / (slowFollowerSeconds * rate))

	out := newBufferLike(buf, buf.Channels())
	dst := channelData(out)

	for c, src := range channelData(buf) {
		var fast, slow, peak float64

		for i, x := range src {
			level := math.Abs(x)
			if level > fast {
				fast = level
			} else {
				fast *= fastCoeff
			}
			slow = slowCoeff*slow + (1-slowCoeff)*level

			transient := max(0, fast-slow*p.Sensitivity)

			gain := 1.0
			if transient > transientThreshold {
				gain += transient * p.Attack * 2
			}
			sustainFactor := max(0, 1-transient*10)
			if sustainFactor > 0.5 {
				gain += p.Sustain * sustainFactor * 0.5
			}

			y := x * max(minTransientGain, gain)
			dst[c][i] = y
			peak = max(peak, math.Abs(y))
		}

		if peak > 1 {
			for i := range dst[c] {
				dst[c][i] /= peak
			}
		}
	}

	return out, nil
}
