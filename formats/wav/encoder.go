// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

// ContentType is the MIME type of the encoded stream.
const ContentType = "audio/wav"

// Encode renders buf as a canonical 16-bit PCM WAV file.
func Encode(buf *audio.Buffer) ([]byte, error) {
	size, err := EncodedSize(buf.Frames(), buf.Channels())
	if err != nil {
		return nil, err
	}

	out := bytes.NewBuffer(make([]byte, 0, size))
	if err := Write(out, buf); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// Write streams buf to w as a canonical 16-bit PCM WAV file. Samples are
// clamped to [-1, 1] and rounded to the nearest int16 step. Size limits are
// checked before anything is written.
func Write(w io.Writer, buf *audio.Buffer) error {
	frames := buf.Frames()
	channels := buf.Channels()

	size, err := EncodedSize(frames, channels)
	if err != nil {
		return err
	}
	if err := checkRate(buf.SampleRate(), channels); err != nil {
		return err
	}

	if _, err := w.Write(header(buf.SampleRate(), channels, uint32(size-HeaderSize))); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	data := make([][]float64, channels)
	for c := range data {
		data[c], _ = buf.Channel(c)
	}

	framesPerChunk := max(1, chunkSize/channels)
	out := make([]byte, min(frames, framesPerChunk)*channels*bytesPerSample)

	for start := 0; start < frames; start += framesPerChunk {
		end := min(start+framesPerChunk, frames)
		chunk := out[:(end-start)*channels*bytesPerSample]

		pos := 0
		for f := start; f < end; f++ {
			for _, ch := range data {
				binary.LittleEndian.PutUint16(chunk[pos:], uint16(utils.FloatToInt16(ch[f])))
				pos += bytesPerSample
			}
		}

		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	return nil
}
