// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

// go-mp3 always produces 16-bit little-endian stereo.
const outputChannels = 2

// byteReader is the part of gomp3.Decoder the source needs.
type byteReader interface {
	Read([]byte) (int, error)
}

type source struct {
	dec        byteReader
	sampleRate int
	buf        []byte
	carry      []byte // odd byte left over from the previous read
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n := copy(s.buf, s.carry)
	s.carry = s.carry[:0]

	// At least one whole sample per call, so a short read is never
	// mistaken for a stalled stream.
	m, err := io.ReadAtLeast(s.dec, s.buf[n:], 2-n)
	n += m

	samples := n / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(utils.Int16ToFloat(v))
	}
	if n%2 == 1 {
		s.carry = append(s.carry, s.buf[n-1])
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		s.done = true
		return samples, io.EOF
	}
	if err != nil {
		return samples, fmt.Errorf("decoding mp3: %w", err)
	}

	return samples, nil
}

// Decoder decodes MPEG-1/2 Layer III streams with github.com/hajimehoshi/go-mp3.
// Mono files are upmixed to stereo by the library.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
	}, nil
}
