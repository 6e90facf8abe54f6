// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/effects"
)

// Split modes.
const (
	SplitEqual    = "equal"
	SplitDuration = "duration"
	SplitSilence  = "silence"
)

// SplitConfig cuts the processed buffer into several outputs.
type SplitConfig struct {
	Mode string `yaml:"mode"`

	// equal
	Parts int `yaml:"parts,omitempty"`

	// duration
	Seconds float64 `yaml:"seconds,omitempty"`

	// silence; MinSilence is a Go duration string such as "300ms"
	ThresholdDB float64 `yaml:"threshold_db,omitempty"`
	MinSilence  string  `yaml:"min_silence,omitempty"`
}

func (s *SplitConfig) silenceParams() (effects.SilenceParams, error) {
	p := effects.SilenceParams{ThresholdDB: s.ThresholdDB}

	if s.MinSilence != "" {
		d, err := time.ParseDuration(s.MinSilence)
		if err != nil {
			return p, err
		}
		p.MinSilence = d
	}

	return p, p.Validate()
}

func (s *SplitConfig) validate() error {
	var err error

	switch strings.ToLower(s.Mode) {
	case SplitEqual:
		if s.Parts < 1 {
			err = fmt.Errorf("split into %d parts", s.Parts)
		}
	case SplitDuration:
		if !(s.Seconds > 0) {
			err = fmt.Errorf("split duration %vs", s.Seconds)
		}
	case SplitSilence:
		_, err = s.silenceParams()
	default:
		err = fmt.Errorf("unknown split mode %q", s.Mode)
	}

	if err != nil {
		return fmt.Errorf("%w: split: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Apply cuts buf according to the configured mode.
func (s *SplitConfig) Apply(buf *audio.Buffer) ([]*audio.Buffer, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	switch strings.ToLower(s.Mode) {
	case SplitEqual:
		return effects.SplitEqual(buf, s.Parts)
	case SplitDuration:
		return effects.SplitDuration(buf, s.Seconds)
	default:
		p, _ := s.silenceParams()
		return effects.SplitSilence(buf, p)
	}
}
