// SPDX-License-Identifier: EPL-2.0

package audfx

import (
	"fmt"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/effects"
)

// Stage is one step of a processing chain. A stage must not modify its
// input.
type Stage func(*audio.Buffer) (*audio.Buffer, error)

// Apply runs stages in order, feeding each the previous result. On failure
// the error names the failing stage by index and no partial result is
// returned. With no stages Apply returns a copy of buf.
func Apply(buf *audio.Buffer, stages ...Stage) (*audio.Buffer, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}

	cur := buf
	for i, stage := range stages {
		out, err := stage(cur)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		if out == nil {
			return nil, fmt.Errorf("stage %d: %w", i, ErrNilBuffer)
		}
		cur = out
	}

	if cur == buf {
		return buf.Clone(), nil
	}

	return cur, nil
}

func FadeStage(p effects.FadeParams) Stage {
	return func(buf *audio.Buffer) (*audio.Buffer, error) {
		return effects.Fade(buf, p)
	}
}

func MixStage(g effects.Gains) Stage {
	return func(buf *audio.Buffer) (*audio.Buffer, error) {
		return effects.Mix(buf, g)
	}
}

// StereoStage synthesises stereo from mono. Input with more than one
// channel is downmixed first.
func StereoStage(p effects.StereoParams) Stage {
	return func(buf *audio.Buffer) (*audio.Buffer, error) {
		if buf.Channels() != 1 {
			buf = audio.Mono(buf)
		}
		return effects.Stereo(buf, p)
	}
}

func TransientStage(p effects.TransientParams) Stage {
	return func(buf *audio.Buffer) (*audio.Buffer, error) {
		return effects.ShapeTransients(buf, p)
	}
}

// TrimStage keeps [start, end) seconds.
func TrimStage(start, end float64) Stage {
	return func(buf *audio.Buffer) (*audio.Buffer, error) {
		return effects.Trim(buf, start, end)
	}
}

func ResampleStage(sampleRate int) Stage {
	return func(buf *audio.Buffer) (*audio.Buffer, error) {
		return audio.Resample(buf, sampleRate)
	}
}

func MonoStage() Stage {
	return func(buf *audio.Buffer) (*audio.Buffer, error) {
		return audio.Mono(buf), nil
	}
}
