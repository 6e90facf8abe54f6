// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audfx/audio"
)

type mockReader struct {
	format  *goaudio.Format
	samples []int
	offset  int
	err     error
	eof     bool // report io.EOF with the last chunk
}

func (m *mockReader) Format() *goaudio.Format { return m.format }

func (m *mockReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	if m.eof && m.offset >= len(m.samples) {
		return n, io.EOF
	}

	return n, nil
}

func stereo44k(samples ...int) *mockReader {
	return &mockReader{
		format:  &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		samples: samples,
	}
}

func TestFullScale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits int
		want float64
	}{
		{16, 32767},
		{24, 8388607},
		{32, 2147483647},
	}

	for _, tt := range tests {
		got, err := FullScale(tt.bits)
		if err != nil || got != tt.want {
			t.Errorf("FullScale(%d) = %v, %v; want %v", tt.bits, got, err, tt.want)
		}
	}

	for _, bits := range []int{0, 8, 12, 64} {
		if _, err := FullScale(bits); !errors.Is(err, ErrBitDepth) {
			t.Errorf("FullScale(%d) error = %v, want ErrBitDepth", bits, err)
		}
	}
}

func TestIntSource_ReadAll(t *testing.T) {
	t.Parallel()

	for _, eof := range []bool{false, true} {
		dec := stereo44k(32767, -32767, 0, -32768, 16384, 1)
		dec.eof = eof

		src, err := NewIntSource(dec, 16)
		if err != nil {
			t.Fatalf("NewIntSource() error = %v", err)
		}

		buf, err := audio.ReadAll(src)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}

		if buf.Channels() != 2 || buf.Frames() != 3 || buf.SampleRate() != 44100 {
			t.Fatalf("ReadAll() = %d ch, %d frames, %d Hz", buf.Channels(), buf.Frames(), buf.SampleRate())
		}

		left, _ := buf.Channel(0)
		right, _ := buf.Channel(1)
		if left[0] != 1 || right[0] != -1 || left[1] != 0 || right[1] != -1 {
			t.Errorf("eof=%v: frames 0-1 = %v %v", eof, left[:2], right[:2])
		}
		if want := float64(float32(16384.0 / 32767)); left[2] != want {
			t.Errorf("eof=%v: left[2] = %v, want %v", eof, left[2], want)
		}
	}
}

func TestIntSource_EOFIsSticky(t *testing.T) {
	t.Parallel()

	src, err := NewIntSource(stereo44k(1, 2), 16)
	if err != nil {
		t.Fatalf("NewIntSource() error = %v", err)
	}

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Fatalf("first ReadSamples() = %d, %v; want 2, EOF", n, err)
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("second ReadSamples() = %d, %v; want 0, EOF", n, err)
	}
}

func TestIntSource_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewIntSource(stereo44k(), 8); !errors.Is(err, ErrBitDepth) {
		t.Errorf("NewIntSource(8 bits) error = %v, want ErrBitDepth", err)
	}
	if _, err := NewIntSource(&mockReader{}, 16); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("NewIntSource(nil format) error = %v, want ErrInvalidParameter", err)
	}

	src, err := NewIntSource(stereo44k(1, 2, 3, 4), 16)
	if err != nil {
		t.Fatalf("NewIntSource() error = %v", err)
	}
	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(odd) error = %v, want ErrInvalidDstSize", err)
	}

	failing := stereo44k(1, 2)
	failing.err = io.ErrUnexpectedEOF
	src, err = NewIntSource(failing, 16)
	if err != nil {
		t.Fatalf("NewIntSource() error = %v", err)
	}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestSeekable(t *testing.T) {
	t.Parallel()

	seeker := bytes.NewReader([]byte("RIFF"))
	rs, err := Seekable(seeker)
	if err != nil || rs != io.ReadSeeker(seeker) {
		t.Errorf("Seekable(ReadSeeker) = %v, %v; want the same reader", rs, err)
	}

	rs, err = Seekable(io.MultiReader(strings.NewReader("RI"), strings.NewReader("FF")))
	if err != nil {
		t.Fatalf("Seekable() error = %v", err)
	}
	if _, err := rs.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	rest, _ := io.ReadAll(rs)
	if string(rest) != "FF" {
		t.Errorf("read after seek = %q, want \"FF\"", rest)
	}
}
