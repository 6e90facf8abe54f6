// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"
	"strings"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

// StereoMode selects how Stereo derives two channels from one.
type StereoMode int

const (
	// StereoDuplicate copies the source to both channels.
	StereoDuplicate StereoMode = iota
	// StereoDelay delays and attenuates the right channel (Haas effect).
	StereoDelay
	// StereoPitch reads the right channel at a slightly faster rate.
	StereoPitch
	// StereoPan applies a sinusoidal auto-pan.
	StereoPan
)

const (
	panRateHz  = 2.0
	maxDelayMs = 100.0
)

var stereoModeNames = map[StereoMode]string{
	StereoDuplicate: "duplicate",
	StereoDelay:     "delay",
	StereoPitch:     "pitch",
	StereoPan:       "pan",
}

func (m StereoMode) String() string {
	if name, ok := stereoModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("StereoMode(%d)", int(m))
}

// ParseStereoMode resolves a mode by name.
func ParseStereoMode(name string) (StereoMode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for m, n := range stereoModeNames {
		if n == key {
			return m, nil
		}
	}

	return 0, fmt.Errorf("stereo mode %q: %w", name, audio.ErrInvalidParameter)
}

// StereoParams configures Stereo. Width in [0, 1] scales the depth of the
// effect; DelayMs is only used by StereoDelay.
type StereoParams struct {
	Mode    StereoMode
	Width   float64
	DelayMs float64
}

// Validate checks the mode and the ranges of Width and DelayMs.
func (p StereoParams) Validate() error {
	if _, ok := stereoModeNames[p.Mode]; !ok {
		return fmt.Errorf("stereo mode %v: %w", p.Mode, audio.ErrInvalidParameter)
	}
	if !utils.IsFinite(p.Width) || p.Width < 0 || p.Width > 1 {
		return fmt.Errorf("stereo width %v: %w", p.Width, audio.ErrInvalidParameter)
	}
	if !utils.IsFinite(p.DelayMs) || p.DelayMs < 0 || p.DelayMs > maxDelayMs {
		return fmt.Errorf("stereo delay %vms: %w", p.DelayMs, audio.ErrInvalidParameter)
	}

	return nil
}

// Stereo builds a two-channel buffer from a mono one. Frame count and
// sample rate are preserved.
func Stereo(buf *audio.Buffer, p StereoParams) (*audio.Buffer, error) {
	if buf.Channels() != 1 {
		return nil, fmt.Errorf("stereo synthesis needs a mono source, got %d channels: %w",
			buf.Channels(), audio.ErrChannelCount)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	mono, _ := buf.Channel(0)
	out := newBufferLike(buf, 2)
	left, _ := out.Channel(0)
	right, _ := out.Channel(1)
	rate := float64(buf.SampleRate())

	switch p.Mode {
	case StereoDuplicate:
		copy(left, mono)
		copy(right, mono)

	case StereoDelay:
		delay := int(math.Round(p.DelayMs / 1000 * rate))
		level := 1 - p.Width*0.3
		copy(left, mono)
		for i := delay; i < len(right); i++ {
			right[i] = mono[i-delay] * level
		}

	case StereoPitch:
		step := 1 + p.Width*0.01
		last := len(mono) - 1
		copy(left, mono)
		for i := range right {
			pos := float64(i) * step
			idx := int(math.Floor(pos))
			right[i] = utils.LinearInterpolate(mono[min(idx, last)], mono[min(idx+1, last)], pos-float64(idx))
		}

	case StereoPan:
		for i, x := range mono {
			t := float64(i) / rate
			pan := math.Sin(2*math.Pi*panRateHz*t) * p.Width
			left[i] = x * (0.5 + pan*0.5)
			right[i] = x * (0.5 - pan*0.5)
		}

	default:
		return nil, fmt.Errorf("stereo mode %v: %w", p.Mode, audio.ErrInvalidParameter)
	}

	return out, nil
}
