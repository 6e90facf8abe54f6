// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/internal/pcm"
)

// extensibleFormat is WAVE_FORMAT_EXTENSIBLE, used by many 24-bit writers.
const extensibleFormat = 0xFFFE

// Decoder reads integer PCM WAV files (16, 24 or 32 bits) of any layout
// github.com/go-audio/wav can walk, including files with extra chunks
// before the data.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != pcmFormat && dec.WavAudioFormat != extensibleFormat {
		return nil, fmt.Errorf("format tag %d: %w", dec.WavAudioFormat, ErrUnsupportedEncoding)
	}

	src, err := pcm.NewIntSource(dec, int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedEncoding, err)
	}

	return src, nil
}
