// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/internal/pcm"
)

// Decoder reads 16, 24 and 32-bit big-endian PCM AIFF files with
// github.com/go-audio/aiff.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	src, err := pcm.NewIntSource(dec, int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedEncoding, err)
	}

	return src, nil
}
