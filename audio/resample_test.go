// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audfx/internal/audiotest"
)

func TestResample_SameRate(t *testing.T) {
	t.Parallel()

	buf, _ := FromChannels(8000, audiotest.Channels(1, 100, audiotest.Constant(0.5))...)

	out, err := Resample(buf, 8000)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	if !out.Equal(buf) {
		t.Error("Resample() to the same rate changed the buffer")
	}
}

func TestResample_InvalidRate(t *testing.T) {
	t.Parallel()

	buf, _ := NewBuffer(1, 10, 8000)

	for _, rate := range []int{0, -8000, MaxSampleRate + 1, 441000000} {
		if _, err := Resample(buf, rate); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Resample(%d) error = %v, want ErrInvalidParameter", rate, err)
		}
	}

	out, err := Resample(buf, MaxSampleRate)
	if err != nil {
		t.Fatalf("Resample(MaxSampleRate) error = %v", err)
	}
	if out.Frames() != 960 {
		t.Errorf("Frames() = %d, want 960", out.Frames())
	}
}

func TestResample_Lengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src, dst int
		frames   int
		want     int
	}{
		{"downsample 44.1k to 8k", 44100, 8000, 44100, 8000},
		{"upsample 8k to 48k", 8000, 48000, 8000, 48000},
		{"downsample 48k to 16k", 48000, 16000, 1000, 333},
		{"empty", 44100, 8000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, _ := FromChannels(tt.src, audiotest.Channels(2, tt.frames, audiotest.Sine(tt.src, 440))...)

			out, err := Resample(buf, tt.dst)
			if err != nil {
				t.Fatalf("Resample() error = %v", err)
			}

			if out.Frames() != tt.want {
				t.Errorf("Frames() = %d, want %d", out.Frames(), tt.want)
			}
			if out.SampleRate() != tt.dst || out.Channels() != 2 {
				t.Errorf("Resample() = %d Hz %d ch, want %d Hz 2 ch", out.SampleRate(), out.Channels(), tt.dst)
			}

			for c := range 2 {
				ch, _ := out.Channel(c)
				for i, s := range ch {
					if s < -1.5 || s > 1.5 {
						t.Fatalf("ch %d sample %d = %v, outside [-1.5, 1.5]", c, i, s)
					}
				}
			}
		})
	}
}

func TestResample_ConstantPreserved(t *testing.T) {
	t.Parallel()

	buf, _ := FromChannels(44100, audiotest.Channels(2, 4410, func(frame, channel int) float64 {
		if channel == 0 {
			return 0.3
		}
		return 0.7
	})...)

	for _, rate := range []int{8000, 96000} {
		out, err := Resample(buf, rate)
		if err != nil {
			t.Fatalf("Resample(%d) error = %v", rate, err)
		}

		left, _ := out.Channel(0)
		right, _ := out.Channel(1)
		for i := range left {
			if math.Abs(left[i]-0.3) > 1e-9 || math.Abs(right[i]-0.7) > 1e-9 {
				t.Fatalf("Resample(%d) frame %d = (%v, %v), want (0.3, 0.7)", rate, i, left[i], right[i])
			}
		}
	}
}

func BenchmarkResample_Downsample(b *testing.B) {
	buf, _ := FromChannels(44100, audiotest.Channels(2, 44100, audiotest.Sine(44100, 440))...)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = Resample(buf, 8000)
	}
}
