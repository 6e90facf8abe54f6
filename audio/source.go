// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

const readChunkFrames = 4096

// ReadAll drains src into a Buffer. A trailing partial frame is dropped.
// ReadAll does not close src.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	rate := src.SampleRate()
	if channels < 1 || rate <= 0 {
		return nil, fmt.Errorf("source reports %d channels at %d Hz: %w", channels, rate, ErrInvalidParameter)
	}

	chunk := make([]float32, readChunkFrames*channels)
	interleaved := make([]float64, 0, len(chunk))

	for {
		n, err := src.ReadSamples(chunk)
		for _, s := range chunk[:n] {
			interleaved = append(interleaved, float64(s))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			// Source made no progress and reported no error.
			break
		}
	}

	whole := len(interleaved) - len(interleaved)%channels

	return FromInterleaved(rate, channels, interleaved[:whole])
}

// bufferSource streams a Buffer as interleaved float32 samples.
type bufferSource struct {
	buf *Buffer
	pos int // next frame
}

// Source returns a streaming view over the buffer.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return len(s.buf.data) }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := len(s.buf.data)
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= s.buf.frames {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, s.buf.frames-s.pos)
	for f := range frames {
		for c, ch := range s.buf.data {
			dst[f*channels+c] = float32(ch[s.pos+f])
		}
	}
	s.pos += frames

	if s.pos >= s.buf.frames {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}
