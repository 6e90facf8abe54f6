// SPDX-License-Identifier: EPL-2.0

// Package pipeline loads processing chains from YAML documents:
//
//	stages:
//	  - type: trim
//	    start: 1
//	    end: 31
//	  - type: fade
//	    fade_in: 1.5
//	    fade_out: 2
//	    curve: scurve
//	  - type: mix
//	    preset: swap
//	split:
//	  mode: silence
//	  threshold_db: -45
//	  min_silence: 400ms
//
// Stage types are fade, mix, stereo, transient, trim, resample and mono.
// Unknown fields are rejected.
package pipeline

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/ik5/audfx"
	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/effects"
)

// ErrInvalidConfig wraps every parse and validation failure.
var ErrInvalidConfig = errors.New("invalid pipeline config")

// Stage types.
const (
	TypeFade      = "fade"
	TypeMix       = "mix"
	TypeStereo    = "stereo"
	TypeTransient = "transient"
	TypeTrim      = "trim"
	TypeResample  = "resample"
	TypeMono      = "mono"
)

// Config is a parsed pipeline document.
type Config struct {
	Steps []StageConfig `yaml:"stages"`
	Split *SplitConfig  `yaml:"split,omitempty"`
}

// GainsConfig is an explicit 2×2 mix matrix.
type GainsConfig struct {
	LL float64 `yaml:"ll"`
	RL float64 `yaml:"rl"`
	LR float64 `yaml:"lr"`
	RR float64 `yaml:"rr"`
}

// StageConfig holds the parameters of one stage. Only the fields of the
// selected Type are read.
type StageConfig struct {
	Type string `yaml:"type"`

	// fade
	FadeIn  float64 `yaml:"fade_in,omitempty"`
	FadeOut float64 `yaml:"fade_out,omitempty"`
	Curve   string  `yaml:"curve,omitempty"`

	// mix and transient presets
	Preset string       `yaml:"preset,omitempty"`
	Gains  *GainsConfig `yaml:"gains,omitempty"`

	// stereo
	Mode    string  `yaml:"mode,omitempty"`
	Width   float64 `yaml:"width,omitempty"`
	DelayMs float64 `yaml:"delay_ms,omitempty"`

	// transient
	Attack      *float64 `yaml:"attack,omitempty"`
	Sustain     *float64 `yaml:"sustain,omitempty"`
	Sensitivity *float64 `yaml:"sensitivity,omitempty"`

	// trim
	Start float64 `yaml:"start,omitempty"`
	End   float64 `yaml:"end,omitempty"`

	// resample
	Rate int `yaml:"rate,omitempty"`
}

// Load reads and validates the pipeline file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes and validates a YAML pipeline document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if len(cfg.Steps) == 0 && cfg.Split == nil {
		return nil, fmt.Errorf("%w: no stages", ErrInvalidConfig)
	}
	if _, err := cfg.Stages(); err != nil {
		return nil, err
	}
	if cfg.Split != nil {
		if err := cfg.Split.validate(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// Stages builds the configured stages in order.
func (c *Config) Stages() ([]audfx.Stage, error) {
	stages := make([]audfx.Stage, 0, len(c.Steps))

	for i, sc := range c.Steps {
		stage, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("%w: stage %d (%s): %w", ErrInvalidConfig, i, sc.Type, err)
		}
		stages = append(stages, stage)
	}

	return stages, nil
}

// Build validates the parameters and returns the stage.
func (sc StageConfig) Build() (audfx.Stage, error) {
	switch strings.ToLower(sc.Type) {
	case TypeFade:
		return sc.fade()
	case TypeMix:
		return sc.mix()
	case TypeStereo:
		return sc.stereo()
	case TypeTransient:
		return sc.transient()
	case TypeTrim:
		if math.IsNaN(sc.Start) || math.IsNaN(sc.End) || sc.Start >= sc.End {
			return nil, fmt.Errorf("trim range [%v, %v) is empty", sc.Start, sc.End)
		}
		return audfx.TrimStage(sc.Start, sc.End), nil
	case TypeResample:
		if sc.Rate <= 0 || sc.Rate > audio.MaxSampleRate {
			return nil, fmt.Errorf("resample rate %d: %w", sc.Rate, audio.ErrInvalidParameter)
		}
		return audfx.ResampleStage(sc.Rate), nil
	case TypeMono:
		return audfx.MonoStage(), nil
	default:
		return nil, fmt.Errorf("unknown stage type %q", sc.Type)
	}
}

func (sc StageConfig) fade() (audfx.Stage, error) {
	p := effects.FadeParams{In: sc.FadeIn, Out: sc.FadeOut}

	if sc.Curve != "" {
		curve, err := effects.ParseCurve(sc.Curve)
		if err != nil {
			return nil, err
		}
		p.Curve = curve
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return audfx.FadeStage(p), nil
}

func (sc StageConfig) mix() (audfx.Stage, error) {
	switch {
	case sc.Preset != "" && sc.Gains != nil:
		return nil, errors.New("mix takes either a preset or gains, not both")
	case sc.Gains != nil:
		g := effects.Gains{LL: sc.Gains.LL, RL: sc.Gains.RL, LR: sc.Gains.LR, RR: sc.Gains.RR}
		for _, v := range []float64{g.LL, g.RL, g.LR, g.RR} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("mix gain %v", v)
			}
		}
		return audfx.MixStage(g), nil
	default:
		preset := sc.Preset
		if preset == "" {
			preset = "identity"
		}
		g, err := effects.PresetGains(preset)
		if err != nil {
			return nil, err
		}
		return audfx.MixStage(g), nil
	}
}

func (sc StageConfig) stereo() (audfx.Stage, error) {
	p := effects.StereoParams{Width: sc.Width, DelayMs: sc.DelayMs}

	if sc.Mode != "" {
		mode, err := effects.ParseStereoMode(sc.Mode)
		if err != nil {
			return nil, err
		}
		p.Mode = mode
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return audfx.StereoStage(p), nil
}

// transient starts from the named preset, if any, and overrides the
// fields that are set explicitly.
func (sc StageConfig) transient() (audfx.Stage, error) {
	p := effects.TransientParams{Sensitivity: effects.DefaultSensitivity}

	if sc.Preset != "" {
		preset, err := effects.TransientPreset(sc.Preset)
		if err != nil {
			return nil, err
		}
		p = preset
	}
	if sc.Attack != nil {
		p.Attack = *sc.Attack
	}
	if sc.Sustain != nil {
		p.Sustain = *sc.Sustain
	}
	if sc.Sensitivity != nil {
		p.Sensitivity = *sc.Sensitivity
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return audfx.TransientStage(p), nil
}
