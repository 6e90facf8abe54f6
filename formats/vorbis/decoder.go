// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
	"github.com/jfreymuth/oggvorbis"
)

// valueReader is the part of oggvorbis.Reader the source needs. Read fills
// p with interleaved samples and returns the number of values written.
type valueReader interface {
	Read(p []float32) (int, error)
}

type source struct {
	dec        valueReader
	sampleRate int
	channels   int
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)

	// Lossy decoding can overshoot full scale slightly.
	for i, v := range dst[:n] {
		dst[i] = float32(utils.Clamp(float64(v), -1, 1))
	}

	if errors.Is(err, io.EOF) {
		s.done = true
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("decoding vorbis: %w", err)
	}

	return n, nil
}

// Decoder decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	if dec.Channels() < 1 || dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrNotVorbisFile, dec.Channels(), dec.SampleRate())
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
