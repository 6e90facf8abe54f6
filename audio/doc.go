// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory PCM buffer and low-level audio primitives.
//
// This package contains the core building blocks:
//   - Buffer, a multi-channel float64 sample container
//   - Source interface for streaming decoder output
//   - ReadAll to collect a Source into a Buffer
//   - Resample for sample rate conversion
//   - Mono for channel averaging
//   - Format registry for decoder registration
//
// # Buffer
//
// A Buffer holds one sample slice per channel, all of the same length:
//
//	buf, err := audio.NewBuffer(2, 44100, 44100) // 1 second of stereo silence
//	left, _ := buf.Channel(0)
//
// Samples are float64 in the nominal range [-1.0, 1.0]. They are not
// clamped while processing; clamping happens when encoding to integer PCM.
// Effect stages never modify their input buffer and always return a new one.
//
// # Source Interface
//
// Decoders stream interleaved float32 samples through the Source interface:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// ReadAll drains a Source into a Buffer, and Buffer.Source streams a Buffer
// back out.
//
// # Resampling
//
// Resample changes the sample rate using cubic interpolation:
//
//	out, err := audio.Resample(buf, 16000)
//
// # Format Registry
//
// The registry resolves decoders by format key or file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Lookup("take1.wav")
//
// # Error Handling
//
// Errors wrap the package sentinels and can be matched with errors.Is:
//
//	if _, err := buf.Channel(5); errors.Is(err, audio.ErrIndexOutOfRange) {
//	    // ...
//	}
package audio
