// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into an audio.Source.
//
// Decoding is delegated to github.com/go-audio/aiff, which walks the FORM
// chunks and yields integer samples; 16, 24 and 32-bit files are scaled to
// [-1, 1]. The decoder needs to seek, so readers that cannot are buffered
// in memory first.
//
//	f, _ := os.Open("loop.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // try another format
//	}
package aiff
