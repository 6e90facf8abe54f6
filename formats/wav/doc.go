// SPDX-License-Identifier: EPL-2.0

// Package wav encodes audio.Buffer values as canonical 16-bit PCM WAV and
// decodes integer PCM WAV files into an audio.Source.
//
// # Encoding
//
// Encode and Write always produce the 44-byte canonical header followed by
// interleaved little-endian int16 samples:
//
//	offset size field
//	     0    4 "RIFF"
//	     4    4 36 + dataSize
//	     8    4 "WAVE"
//	    12    4 "fmt "
//	    16    4 16
//	    20    2 1 (PCM)
//	    22    2 channels
//	    24    4 sample rate
//	    28    4 sample rate × channels × 2
//	    32    2 channels × 2
//	    34    2 16
//	    36    4 "data"
//	    40    4 dataSize = frames × channels × 2
//
// Each sample is round(clamp(x, -1, 1) × 32767). A buffer whose data would
// not fit the 32-bit size fields is rejected with ErrEncodingOverflow before
// any byte is written.
//
//	data, err := wav.Encode(buf)
//	if errors.Is(err, wav.ErrEncodingOverflow) {
//	    // split the buffer first
//	}
//
// WriteInt16 writes already quantised samples.
//
// # Decoding
//
// Decoder is backed by github.com/go-audio/wav and accepts 16, 24 and
// 32-bit integer PCM. Non-seekable readers are buffered in memory.
//
//	f, _ := os.Open("in.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	buf, err := audio.ReadAll(src)
package wav
