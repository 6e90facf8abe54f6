// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile is returned when the input is not a RIFF/WAVE stream.
	ErrNotWavFile = errors.New("not a WAV file")
	// ErrUnsupportedEncoding is returned for WAV files that are not integer PCM.
	ErrUnsupportedEncoding = errors.New("unsupported WAV encoding")
	// ErrEncodingOverflow is returned when the sample data does not fit the
	// 32-bit RIFF size fields.
	ErrEncodingOverflow = errors.New("audio too large for WAV")
)
