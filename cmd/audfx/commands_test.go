// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/ik5/audfx"
	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/internal/audiotest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func writeInput(t *testing.T, channels, frames int, w audiotest.Waveform) string {
	t.Helper()

	buf, err := audio.FromChannels(8000, audiotest.Channels(channels, frames, w)...)
	if err != nil {
		t.Fatalf("FromChannels() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "in.wav")
	if err := audfx.WriteFile(path, buf); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	return path
}

func TestPartPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base string
		i, n int
		want string
	}{
		{"out.wav", 0, 3, "out-1.wav"},
		{"out.wav", 2, 3, "out-3.wav"},
		{"out.wav", 0, 12, "out-01.wav"},
		{"dir/take.wave", 99, 100, "dir/take-100.wave"},
		{"out", 1, 2, "out-2.wav"},
	}

	for _, tt := range tests {
		if got := partPath(tt.base, tt.i, tt.n); got != tt.want {
			t.Errorf("partPath(%q, %d, %d) = %q, want %q", tt.base, tt.i, tt.n, got, tt.want)
		}
	}
}

func TestPeakDB(t *testing.T) {
	t.Parallel()

	if got := peakDB([]float64{0.25, -0.5, 0.1}); math.Abs(got-(-6.0206)) > 1e-3 {
		t.Errorf("peakDB() = %v, want about -6.02", got)
	}
	if got := peakDB([]float64{0, 0}); !math.IsInf(got, -1) {
		t.Errorf("peakDB(silence) = %v, want -Inf", got)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	if _, err := newLogger(&bytes.Buffer{}, "loud", false); err == nil {
		t.Error("newLogger(loud) error = nil")
	}

	var out bytes.Buffer
	log, err := newLogger(&out, "warn", true)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}

	log.Info("hidden")
	log.WithField("stage", "fade").Warn("shown")

	got := out.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("info entry written at warn level: %s", got)
	}
	if !strings.Contains(got, `"stage":"fade"`) || !strings.Contains(got, `"level":"warning"`) {
		t.Errorf("JSON entry = %s", got)
	}
}

func TestLogged(t *testing.T) {
	t.Parallel()

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	buf, err := audio.NewBuffer(2, 100, 8000)
	if err != nil {
		t.Fatal(err)
	}

	out, err := logged(log, "mono", audfx.MonoStage())(buf)
	if err != nil {
		t.Fatalf("logged stage error = %v", err)
	}
	if out.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", out.Channels())
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.DebugLevel || entry.Data["stage"] != "mono" || entry.Data["frames"] != 100 {
		t.Fatalf("entry = %+v", entry)
	}

	errStage := errors.New("boom")
	failing := func(*audio.Buffer) (*audio.Buffer, error) { return nil, errStage }
	if _, err := logged(log, "broken", failing)(buf); !errors.Is(err, errStage) {
		t.Fatalf("error = %v, want %v", err, errStage)
	}

	entry = hook.LastEntry()
	if entry.Level != logrus.ErrorLevel || entry.Data[logrus.ErrorKey] != errStage {
		t.Errorf("entry = %+v", entry)
	}
}

func TestFadeCmd(t *testing.T) {
	t.Parallel()

	log, _ := test.NewNullLogger()
	in := writeInput(t, 1, 8000, audiotest.Constant(0.5))
	out := filepath.Join(t.TempDir(), "out.wav")

	cmd := &FadeCmd{
		ioArgs: ioArgs{Input: in, Output: out},
		FadeIn: 0.5,
		Curve:  "linear",
	}
	if err := cmd.Run(log); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := audfx.DecodeFile(out)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}

	ch, _ := got.Channel(0)
	if ch[0] != 0 {
		t.Errorf("first sample = %v, want 0", ch[0])
	}
	if math.Abs(ch[2000]-0.25) > 1e-3 {
		t.Errorf("sample 2000 = %v, want about 0.25", ch[2000])
	}
	if math.Abs(ch[7999]-0.5) > 1e-3 {
		t.Errorf("last sample = %v, want about 0.5", ch[7999])
	}
}

func TestMixCmd_Gains(t *testing.T) {
	t.Parallel()

	log, _ := test.NewNullLogger()
	in := writeInput(t, 2, 100, audiotest.Constant(0.25))

	cmd := &MixCmd{
		ioArgs: ioArgs{Input: in, Output: filepath.Join(t.TempDir(), "out.wav")},
		Gains:  []float64{1, 0},
	}
	if err := cmd.Run(log); err == nil {
		t.Error("Run() with 2 gains error = nil")
	}

	cmd.Gains = []float64{0, 0, 1, 1}
	if err := cmd.Run(log); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := audfx.DecodeFile(cmd.Output)
	if err != nil {
		t.Fatal(err)
	}
	left, _ := got.Channel(0)
	right, _ := got.Channel(1)
	if left[10] != 0 || math.Abs(right[10]-0.5) > 1e-3 {
		t.Errorf("frame 10 = (%v, %v), want (0, 0.5)", left[10], right[10])
	}
}

func TestTransientCmd_ExplicitZeroOverridesPreset(t *testing.T) {
	t.Parallel()

	log, _ := test.NewNullLogger()
	in := writeInput(t, 1, 800, audiotest.Sine(8000, 440))
	out := filepath.Join(t.TempDir(), "out.wav")

	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": version})
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	args := []string{"transient", "--preset", "punch", "--attack", "0", "--sustain", "0", "-o", out, in}
	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}

	cmd := cli.Transient
	if cmd.Attack == nil || *cmd.Attack != 0 || cmd.Sustain == nil || *cmd.Sustain != 0 {
		t.Fatalf("Attack = %v, Sustain = %v, want explicit zeros", cmd.Attack, cmd.Sustain)
	}
	if err := cmd.Run(log); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Zero attack and sustain leave every gain at 1.
	want, err := audfx.DecodeFile(in)
	if err != nil {
		t.Fatal(err)
	}
	got, err := audfx.DecodeFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Error("output differs from input with attack and sustain set to 0")
	}
}

func TestTransientCmd_PresetWithoutOverrides(t *testing.T) {
	t.Parallel()

	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": version})
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	in := writeInput(t, 1, 10, audiotest.Constant(0.1))
	if _, err := parser.Parse([]string{"transient", "--preset", "soften", "-o", "out.wav", in}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cli.Transient.Attack != nil || cli.Transient.Sustain != nil {
		t.Errorf("Attack = %v, Sustain = %v, want nil", cli.Transient.Attack, cli.Transient.Sustain)
	}
}

func TestTrimCmd_InvalidRange(t *testing.T) {
	t.Parallel()

	log, _ := test.NewNullLogger()
	out := filepath.Join(t.TempDir(), "out.wav")

	cmd := &TrimCmd{
		ioArgs: ioArgs{Input: writeInput(t, 1, 800, audiotest.Constant(0.1)), Output: out},
		Start:  0.5,
		End:    0.2,
	}
	if err := cmd.Run(log); err == nil {
		t.Fatal("Run() error = nil")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written despite error: %v", err)
	}
}

func TestSplitCmd_Equal(t *testing.T) {
	t.Parallel()

	log, _ := test.NewNullLogger()
	dir := t.TempDir()

	cmd := &SplitCmd{
		Input:  writeInput(t, 1, 900, audiotest.Ramp(0.001, 0)),
		Output: filepath.Join(dir, "part.wav"),
		Mode:   "equal",
		Parts:  3,
	}
	if err := cmd.Run(log); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, name := range []string{"part-1.wav", "part-2.wav", "part-3.wav"} {
		buf, err := audfx.DecodeFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("DecodeFile(%s) error = %v", name, err)
		}
		if buf.Frames() != 300 {
			t.Errorf("%s frames = %d, want 300", name, buf.Frames())
		}
	}
}

func TestRunCmd(t *testing.T) {
	t.Parallel()

	log, hook := test.NewNullLogger()
	dir := t.TempDir()

	config := filepath.Join(dir, "pipeline.yaml")
	doc := "stages:\n  - type: trim\n    start: 0\n    end: 0.5\n  - type: stereo\n    mode: pan\n    width: 0.5\n"
	if err := os.WriteFile(config, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := &RunCmd{
		ioArgs: ioArgs{Input: writeInput(t, 1, 8000, audiotest.Sine(8000, 440)), Output: filepath.Join(dir, "out.wav")},
		Config: config,
	}
	if err := cmd.Run(log); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := audfx.DecodeFile(cmd.Output)
	if err != nil {
		t.Fatal(err)
	}
	if got.Channels() != 2 || got.Frames() != 4000 {
		t.Errorf("output = %d ch, %d frames, want 2 ch, 4000 frames", got.Channels(), got.Frames())
	}

	if entry := hook.LastEntry(); entry == nil || entry.Data["output"] != cmd.Output {
		t.Errorf("last entry = %+v", entry)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	buf, err := audio.FromChannels(16000, make([]float64, 1600), audiotest.Channels(1, 1600, audiotest.Constant(0.5))[0])
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	describe(&out, "/tmp/take.wav", buf)

	got := out.String()
	for _, want := range []string{"take.wav", "16000 Hz", "100ms", "-Inf dBFS", "-6.0 dBFS", "6444 bytes"} {
		if !strings.Contains(got, want) {
			t.Errorf("describe() output missing %q:\n%s", want, got)
		}
	}
}
