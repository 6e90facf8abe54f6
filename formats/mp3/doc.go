// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into an audio.Source using
// github.com/hajimehoshi/go-mp3, a pure Go decoder.
//
// The decoded stream is always 16-bit stereo; samples are scaled to
// [-1, 1] by dividing by 32767. Decode failures wrap ErrNotMP3File.
package mp3
