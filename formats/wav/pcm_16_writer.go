// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audfx/audio"
)

const (
	// HeaderSize is the length of the canonical RIFF/WAVE header.
	HeaderSize = 44

	bitsPerSample  = 16
	bytesPerSample = bitsPerSample / 8
	pcmFormat      = 1
	fmtChunkSize   = 16

	// riffSize = 36 + dataSize must fit in a uint32.
	maxDataSize = math.MaxUint32 - (HeaderSize - 8)

	chunkSize = 8192 // samples per Write call
)

// EncodedSize returns the total byte length of a 16-bit WAV holding frames
// frames of channels channels, or ErrEncodingOverflow if the data would not
// fit the RIFF size fields.
func EncodedSize(frames, channels int) (int64, error) {
	if channels < 1 || channels > math.MaxUint16/bytesPerSample {
		return 0, fmt.Errorf("channel count %d: %w", channels, audio.ErrInvalidParameter)
	}
	if frames < 0 {
		return 0, fmt.Errorf("frame count %d: %w", frames, audio.ErrInvalidParameter)
	}

	frameSize := int64(channels) * bytesPerSample
	if int64(frames) > maxDataSize/frameSize {
		return 0, fmt.Errorf("%d frames of %d channels: %w", frames, channels, ErrEncodingOverflow)
	}

	return HeaderSize + int64(frames)*frameSize, nil
}

// header builds the 44-byte canonical header.
func header(sampleRate, channels int, dataSize uint32) []byte {
	blockAlign := uint16(channels * bytesPerSample)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	h := make([]byte, HeaderSize)

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], HeaderSize-8+dataSize)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(h[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], byteRate)
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], bitsPerSample)

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	return h
}

// checkRate rejects rates whose byte rate overflows the header field.
func checkRate(sampleRate, channels int) error {
	if sampleRate <= 0 || int64(sampleRate)*int64(channels)*bytesPerSample > math.MaxUint32 {
		return fmt.Errorf("sample rate %d: %w", sampleRate, audio.ErrInvalidParameter)
	}
	return nil
}

// WriteInt16 writes interleaved 16-bit PCM samples as a WAV stream. The
// header is written in one call and the data in chunks.
func WriteInt16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 || len(samples)%channels != 0 {
		return fmt.Errorf("%d samples for %d channels: %w", len(samples), channels, audio.ErrInvalidDstSize)
	}

	size, err := EncodedSize(len(samples)/channels, channels)
	if err != nil {
		return err
	}
	if err := checkRate(sampleRate, channels); err != nil {
		return err
	}

	if _, err := w.Write(header(sampleRate, channels, uint32(size-HeaderSize))); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*bytesPerSample)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*bytesPerSample]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	return nil
}
