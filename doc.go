// SPDX-License-Identifier: EPL-2.0

// Package audfx is an offline audio effects pipeline.
//
// Audio is decoded into an in-memory audio.Buffer, passed through a chain of
// pure effect stages and encoded as canonical 16-bit PCM WAV.
//
// # Quick Start
//
//	buf, err := audfx.DecodeFile("voice.mp3")
//	if err != nil {
//	    return err
//	}
//
//	out, err := audfx.Apply(buf,
//	    audfx.TrimStage(1.5, 30),
//	    audfx.FadeStage(effects.FadeParams{In: 0.5, Out: 2, Curve: effects.CurveSCurve}),
//	    audfx.MonoStage(),
//	)
//	if err != nil {
//	    return err
//	}
//
//	return audfx.WriteFile("voice.wav", out)
//
// # Stages
//
// A Stage is a function from buffer to buffer. The constructors in this
// package wrap the effects and audio packages:
//
//   - FadeStage, MixStage, StereoStage, TransientStage, TrimStage
//   - ResampleStage and MonoStage
//
// Apply runs stages in order and stops at the first error, which is
// wrapped with the index of the failing stage. Inputs are never modified.
//
// # Formats
//
// NewRegistry maps file extensions to decoders:
//   - WAV via formats/wav (16, 24 and 32-bit integer PCM)
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// Output is always 16-bit PCM WAV; see formats/wav.
//
// Splitting is not a Stage since it produces several buffers. Use the
// Split functions of package effects on the result of Apply.
package audfx
