// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into an audio.Source using the
// pure Go github.com/jfreymuth/oggvorbis decoder.
//
// Samples are delivered interleaved and clamped to [-1, 1]. Decode failures
// wrap ErrNotVorbisFile.
package vorbis
