// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer PCM decoders of github.com/go-audio to
// audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

// ErrBitDepth is returned for bit depths IntSource cannot scale.
var ErrBitDepth = errors.New("unsupported PCM bit depth")

// IntReader is implemented by the go-audio wav and aiff decoders.
type IntReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// FullScale returns the largest positive sample value at bitDepth. Decoded
// samples are divided by it, so full-scale int16 maps back to exactly 1.
func FullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return float64(int64(1)<<(bitDepth-1) - 1), nil
	default:
		return 0, fmt.Errorf("%d bits: %w", bitDepth, ErrBitDepth)
	}
}

// IntSource streams an IntReader as float32 samples in [-1, 1].
type IntSource struct {
	dec        IntReader
	sampleRate int
	channels   int
	scale      float64
	buf        *goaudio.IntBuffer
	done       bool
}

// NewIntSource wraps dec. The stream layout is taken from dec.Format().
func NewIntSource(dec IntReader, bitDepth int) (*IntSource, error) {
	scale, err := FullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("pcm format %+v: %w", format, audio.ErrInvalidParameter)
	}

	return &IntSource{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		scale:      scale,
	}, nil
}

func (s *IntSource) SampleRate() int { return s.sampleRate }
func (s *IntSource) Channels() int   { return s.channels }
func (s *IntSource) Close() error    { return nil }

func (s *IntSource) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Format: s.dec.Format(),
			Data:   make([]int, len(dst)),
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(utils.Clamp(float64(v)/s.scale, -1, 1))
	}

	switch {
	case errors.Is(err, io.EOF), err == nil && n < len(dst):
		s.done = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("decoding pcm: %w", err)
	}

	return n, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek. The go-audio decoders walk chunks with Seek.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}
