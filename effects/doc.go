// SPDX-License-Identifier: EPL-2.0

/*
Package effects implements offline processing stages over audio.Buffer.

Every stage is a pure function: it validates its parameters, reads the input
buffer and returns a newly allocated result. Inputs are never modified, so a
buffer can be fed to several stages concurrently.

Stages:

  - Fade: fade in and out with linear, exponential, logarithmic or S-curve
    gain.
  - Mix and MixMatrix: channel remapping through a gain matrix, with the
    Identity, Swap, MonoDownmix, LeftOnly and RightOnly presets.
  - Stereo: mono to stereo synthesis by duplication, Haas delay, pitch
    offset or auto-pan.
  - ShapeTransients: attack and sustain shaping driven by two envelope
    followers.
  - Trim, SplitEqual, SplitDuration and SplitSilence: cutting by time,
    count or detected silence. Concat reverses a split.

Parameter errors wrap audio.ErrInvalidParameter, audio.ErrChannelCount or
audio.ErrInvalidRange and can be tested with errors.Is.
*/
package effects
