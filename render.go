// SPDX-License-Identifier: EPL-2.0

package audfx

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/aiff"
	"github.com/ik5/audfx/formats/mp3"
	"github.com/ik5/audfx/formats/vorbis"
	"github.com/ik5/audfx/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder, keyed by the
// file extensions they handle.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

// Decode reads the file at path into memory using the decoder registered
// for its extension.
func Decode(reg *audio.Registry, path string) (buf *audio.Buffer, err error) {
	dec, err := reg.Lookup(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, src.Close())
	}()

	buf, err = audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return buf, nil
}

// DecodeFile is Decode with the default registry.
func DecodeFile(path string) (*audio.Buffer, error) {
	return Decode(NewRegistry(), path)
}

// Render applies stages to buf and writes the result to w as 16-bit WAV.
// Nothing is written if a stage fails.
func Render(w io.Writer, buf *audio.Buffer, stages ...Stage) error {
	out, err := Apply(buf, stages...)
	if err != nil {
		return err
	}

	return wav.Write(w, out)
}

// WriteFile encodes buf as 16-bit WAV at path, replacing any existing file.
func WriteFile(path string, buf *audio.Buffer) (err error) {
	// Fail on size before creating anything.
	if _, err := wav.EncodedSize(buf.Frames(), buf.Channels()); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := wav.Write(f, buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
