// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/audfx"
	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/wav"
	"github.com/ik5/audfx/pipeline"
	"github.com/ik5/audfx/utils"
	"github.com/sirupsen/logrus"
)

// ioArgs is shared by the single-output commands.
type ioArgs struct {
	Input  string `arg:"" type:"existingfile" help:"Input file (wav, mp3, ogg, aiff)."`
	Output string `short:"o" required:"" type:"path" help:"Output WAV file."`
}

func (a ioArgs) process(log *logrus.Logger, sc pipeline.StageConfig) error {
	stage, err := sc.Build()
	if err != nil {
		return err
	}

	buf, err := decode(log, a.Input)
	if err != nil {
		return err
	}

	out, err := audfx.Apply(buf, logged(log, sc.Type, stage))
	if err != nil {
		return err
	}

	return write(log, a.Output, out)
}

type FadeCmd struct {
	ioArgs

	FadeIn  float64 `name:"fade-in" help:"Fade-in length in seconds."`
	FadeOut float64 `name:"fade-out" help:"Fade-out length in seconds."`
	Curve   string  `default:"linear" enum:"linear,exponential,logarithmic,scurve" help:"Fade curve."`
}

func (c *FadeCmd) Run(log *logrus.Logger) error {
	return c.process(log, pipeline.StageConfig{
		Type:    pipeline.TypeFade,
		FadeIn:  c.FadeIn,
		FadeOut: c.FadeOut,
		Curve:   c.Curve,
	})
}

type MixCmd struct {
	ioArgs

	Preset string    `default:"identity" enum:"identity,swap,mono,left,right" help:"Mix preset."`
	Gains  []float64 `sep:"," placeholder:"LL,RL,LR,RR" help:"Explicit gains, replacing the preset."`
}

func (c *MixCmd) Run(log *logrus.Logger) error {
	sc := pipeline.StageConfig{Type: pipeline.TypeMix, Preset: c.Preset}

	if len(c.Gains) > 0 {
		if len(c.Gains) != 4 {
			return fmt.Errorf("--gains takes 4 values, got %d", len(c.Gains))
		}
		sc.Preset = ""
		sc.Gains = &pipeline.GainsConfig{
			LL: c.Gains[0],
			RL: c.Gains[1],
			LR: c.Gains[2],
			RR: c.Gains[3],
		}
	}

	return c.process(log, sc)
}

type StereoCmd struct {
	ioArgs

	Mode  string  `default:"duplicate" enum:"duplicate,delay,pitch,pan" help:"Stereo mode."`
	Width float64 `default:"0.5" help:"Effect width in [0, 1]."`
	Delay float64 `default:"20" help:"Right channel delay in milliseconds (delay mode)."`
}

func (c *StereoCmd) Run(log *logrus.Logger) error {
	return c.process(log, pipeline.StageConfig{
		Type:    pipeline.TypeStereo,
		Mode:    c.Mode,
		Width:   c.Width,
		DelayMs: c.Delay,
	})
}

type TransientCmd struct {
	ioArgs

	Preset      string   `help:"Preset: punch, soften, sustain or tight."`
	Attack      *float64 `help:"Attack amount in [-1, 1]. Overrides the preset."`
	Sustain     *float64 `help:"Sustain amount in [-1, 1]. Overrides the preset."`
	Sensitivity float64  `default:"1" help:"Weight of the slow envelope."`
}

// Attack and Sustain are nil unless given on the command line, so an
// explicit 0 still overrides the preset.
func (c *TransientCmd) Run(log *logrus.Logger) error {
	return c.process(log, pipeline.StageConfig{
		Type:        pipeline.TypeTransient,
		Preset:      c.Preset,
		Attack:      c.Attack,
		Sustain:     c.Sustain,
		Sensitivity: &c.Sensitivity,
	})
}

type TrimCmd struct {
	ioArgs

	Start float64 `help:"Start in seconds."`
	End   float64 `required:"" help:"End in seconds, exclusive."`
}

func (c *TrimCmd) Run(log *logrus.Logger) error {
	return c.process(log, pipeline.StageConfig{
		Type:  pipeline.TypeTrim,
		Start: c.Start,
		End:   c.End,
	})
}

type SplitCmd struct {
	Input  string `arg:"" type:"existingfile" help:"Input file (wav, mp3, ogg, aiff)."`
	Output string `short:"o" required:"" type:"path" help:"Output name; parts are numbered, as in part-1.wav."`

	Mode        string        `default:"silence" enum:"equal,duration,silence" help:"How to cut."`
	Parts       int           `default:"2" help:"Number of parts (equal mode)."`
	Seconds     float64       `default:"30" help:"Part length in seconds (duration mode)."`
	ThresholdDB float64       `name:"threshold-db" default:"-40" help:"Silence threshold in dBFS (silence mode)."`
	MinSilence  time.Duration `name:"min-silence" default:"300ms" help:"Shortest gap to cut at (silence mode)."`
}

func (c *SplitCmd) Run(log *logrus.Logger) error {
	split := pipeline.SplitConfig{
		Mode:        c.Mode,
		Parts:       c.Parts,
		Seconds:     c.Seconds,
		ThresholdDB: c.ThresholdDB,
		MinSilence:  c.MinSilence.String(),
	}

	buf, err := decode(log, c.Input)
	if err != nil {
		return err
	}

	parts, err := split.Apply(buf)
	if err != nil {
		return err
	}

	return writeParts(log, c.Output, parts)
}

type RunCmd struct {
	ioArgs

	Config string `short:"c" required:"" type:"existingfile" help:"Pipeline YAML file."`
}

func (c *RunCmd) Run(log *logrus.Logger) error {
	cfg, err := pipeline.Load(c.Config)
	if err != nil {
		return err
	}

	stages, err := cfg.Stages()
	if err != nil {
		return err
	}
	for i := range stages {
		stages[i] = logged(log, cfg.Steps[i].Type, stages[i])
	}

	buf, err := decode(log, c.Input)
	if err != nil {
		return err
	}

	out, err := audfx.Apply(buf, stages...)
	if err != nil {
		return err
	}

	if cfg.Split == nil {
		return write(log, c.Output, out)
	}

	parts, err := cfg.Split.Apply(out)
	if err != nil {
		return err
	}

	return writeParts(log, c.Output, parts)
}

type InfoCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Audio files to describe."`
}

func (c *InfoCmd) Run(log *logrus.Logger) error {
	for _, path := range c.Files {
		buf, err := decode(log, path)
		if err != nil {
			return err
		}
		describe(os.Stdout, path, buf)
	}

	return nil
}

func decode(log logrus.FieldLogger, path string) (*audio.Buffer, error) {
	buf, err := audfx.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"input":       path,
		"frames":      buf.Frames(),
		"channels":    buf.Channels(),
		"sample_rate": buf.SampleRate(),
	}).Info("decoded")

	return buf, nil
}

func write(log logrus.FieldLogger, path string, buf *audio.Buffer) error {
	if err := audfx.WriteFile(path, buf); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"output":  path,
		"frames":  buf.Frames(),
		"seconds": buf.Duration(),
	}).Info("written")

	return nil
}

func writeParts(log logrus.FieldLogger, base string, parts []*audio.Buffer) error {
	for i, part := range parts {
		if err := write(log, partPath(base, i, len(parts)), part); err != nil {
			return err
		}
	}

	return nil
}

// partPath numbers the i-th of n outputs: out.wav becomes out-1.wav, or
// out-01.wav and so on when n needs more digits. A missing extension
// defaults to .wav.
func partPath(base string, i, n int) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = ".wav"
	}

	return fmt.Sprintf("%s-%0*d%s", stem, len(strconv.Itoa(n)), i+1, ext)
}

// peakDB returns the peak level of samples in dBFS, -Inf for silence.
func peakDB(samples []float64) float64 {
	var peak float64
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}

	return utils.LinearToDB(peak)
}

func describe(w io.Writer, path string, buf *audio.Buffer) {
	printTitle(w, filepath.Base(path))
	printKeyValue(w, "Sample rate", fmt.Sprintf("%d Hz", buf.SampleRate()))
	printKeyValue(w, "Channels", buf.Channels())
	printKeyValue(w, "Frames", buf.Frames())
	printKeyValue(w, "Duration", time.Duration(buf.Duration()*float64(time.Second)).Round(time.Millisecond))

	for i := range buf.Channels() {
		ch, _ := buf.Channel(i)
		printKeyValue(w, fmt.Sprintf("Peak ch %d", i), fmt.Sprintf("%.1f dBFS", peakDB(ch)))
	}

	if size, err := wav.EncodedSize(buf.Frames(), buf.Channels()); err == nil {
		printKeyValue(w, "WAV size", fmt.Sprintf("%d bytes", size))
	}
}
