// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"strings"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

// Gains is a 2×2 stereo mix matrix. The first letter names the input
// channel and the second the output: RL is the right input's gain into the
// left output.
type Gains struct {
	LL float64
	RL float64
	LR float64
	RR float64
}

// Mix presets.
var (
	Identity    = Gains{LL: 1, RL: 0, LR: 0, RR: 1}
	Swap        = Gains{LL: 0, RL: 1, LR: 1, RR: 0}
	MonoDownmix = Gains{LL: 0.5, RL: 0.5, LR: 0.5, RR: 0.5}
	LeftOnly    = Gains{LL: 1, RL: 0, LR: 1, RR: 0}
	RightOnly   = Gains{LL: 0, RL: 1, LR: 0, RR: 1}
)

var mixPresets = map[string]Gains{
	"identity": Identity,
	"swap":     Swap,
	"mono":     MonoDownmix,
	"left":     LeftOnly,
	"right":    RightOnly,
}

// PresetGains looks up a mix preset: identity, swap, mono, left or right.
func PresetGains(name string) (Gains, error) {
	if g, ok := mixPresets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return g, nil
	}

	return Gains{}, fmt.Errorf("mix preset %q: %w", name, audio.ErrInvalidParameter)
}

func (g Gains) matrix() [][]float64 {
	return [][]float64{
		{g.LL, g.RL},
		{g.LR, g.RR},
	}
}

// Mix remaps a mono or stereo buffer through g and always returns a stereo
// buffer. A mono input feeds both the left and right inputs. Output samples
// are clamped to [-1, 1].
func Mix(buf *audio.Buffer, g Gains) (*audio.Buffer, error) {
	switch buf.Channels() {
	case 1:
		left, _ := buf.Channel(0)
		stereo, err := audio.FromChannels(buf.SampleRate(), left, left)
		if err != nil {
			return nil, err
		}
		return MixMatrix(stereo, g.matrix())
	case 2:
		return MixMatrix(buf, g.matrix())
	default:
		return nil, fmt.Errorf("stereo mix of %d channels: %w", buf.Channels(), audio.ErrChannelCount)
	}
}

// MixMatrix computes out[j] = clamp(sum_k in[k] * m[j][k], -1, 1). The
// output has len(m) channels; every row must have one gain per input
// channel.
func MixMatrix(buf *audio.Buffer, m [][]float64) (*audio.Buffer, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("empty mix matrix: %w", audio.ErrInvalidParameter)
	}
	for j, row := range m {
		if len(row) != buf.Channels() {
			return nil, fmt.Errorf("mix matrix row %d has %d gains for %d channels: %w",
				j, len(row), buf.Channels(), audio.ErrChannelCount)
		}
		for k, gain := range row {
			if !utils.IsFinite(gain) {
				return nil, fmt.Errorf("mix gain [%d][%d] = %v: %w", j, k, gain, audio.ErrInvalidParameter)
			}
		}
	}

	out := newBufferLike(buf, len(m))
	src := channelData(buf)

	for j, dst := range channelData(out) {
		row := m[j]
		for i := range dst {
			var sum float64
			for k, ch := range src {
				sum += ch[i] * row[k]
			}
			dst[i] = utils.Clamp(sum, -1, 1)
		}
	}

	return out, nil
}
