// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"
	"time"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

// Trim copies the range [start, end) seconds into a new buffer. Both ends
// are clamped to [0, duration] first; an empty range after clamping is an
// error.
func Trim(buf *audio.Buffer, start, end float64) (*audio.Buffer, error) {
	if math.IsNaN(start) || math.IsNaN(end) {
		return nil, fmt.Errorf("trim [%v, %v): %w", start, end, audio.ErrInvalidRange)
	}

	duration := buf.Duration()
	start = utils.Clamp(start, 0, duration)
	end = utils.Clamp(end, 0, duration)
	if start >= end {
		return nil, fmt.Errorf("trim [%v, %v) of %vs: %w", start, end, duration, audio.ErrInvalidRange)
	}

	rate := float64(buf.SampleRate())
	endFrame := min(int(math.Floor(end*rate)), buf.Frames())
	startFrame := min(int(math.Floor(start*rate)), endFrame)

	return buf.Slice(startFrame, endFrame)
}

// SplitEqual divides buf into n contiguous parts of equal length; the last
// part absorbs the remainder.
func SplitEqual(buf *audio.Buffer, n int) ([]*audio.Buffer, error) {
	frames := buf.Frames()
	if n < 1 || (n > 1 && n > frames) {
		return nil, fmt.Errorf("split into %d parts of %d frames: %w", n, frames, audio.ErrInvalidParameter)
	}

	size := frames / n
	bounds := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		bounds = append(bounds, i*size)
	}

	return splitAt(buf, bounds)
}

// SplitDuration divides buf into parts of the given length in seconds; the
// final part may be shorter.
func SplitDuration(buf *audio.Buffer, seconds float64) ([]*audio.Buffer, error) {
	if !utils.IsFinite(seconds) {
		return nil, fmt.Errorf("split duration %v: %w", seconds, audio.ErrInvalidParameter)
	}

	size := math.Floor(seconds * float64(buf.SampleRate()))
	if size < 1 {
		return nil, fmt.Errorf("split duration %vs is shorter than one frame: %w", seconds, audio.ErrInvalidParameter)
	}

	if size >= float64(buf.Frames()) {
		return []*audio.Buffer{buf.Clone()}, nil
	}

	var bounds []int
	for b := int(size); b < buf.Frames(); b += int(size) {
		bounds = append(bounds, b)
	}

	return splitAt(buf, bounds)
}

// DefaultMinSilence is the shortest quiet run SplitSilence treats as a gap.
const DefaultMinSilence = 300 * time.Millisecond

// SilenceParams configures SplitSilence. A zero MinSilence selects
// DefaultMinSilence.
type SilenceParams struct {
	ThresholdDB float64
	MinSilence  time.Duration
}

// Validate checks that the threshold is finite and MinSilence is not
// negative.
func (p SilenceParams) Validate() error {
	if !utils.IsFinite(p.ThresholdDB) {
		return fmt.Errorf("silence threshold %vdB: %w", p.ThresholdDB, audio.ErrInvalidParameter)
	}
	if p.MinSilence < 0 {
		return fmt.Errorf("minimum silence %v: %w", p.MinSilence, audio.ErrInvalidParameter)
	}

	return nil
}

// SplitSilence splits buf at the midpoint of every maximal run on channel 0
// where |sample| stays below ThresholdDB for at least MinSilence. Without
// such a run the result is a single copy of buf.
func SplitSilence(buf *audio.Buffer, p SilenceParams) ([]*audio.Buffer, error) {
	bounds, err := SilenceBoundaries(buf, p)
	if err != nil {
		return nil, err
	}

	return splitAt(buf, bounds)
}

// SilenceBoundaries returns the frame indices SplitSilence would split at.
func SilenceBoundaries(buf *audio.Buffer, p SilenceParams) ([]int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	minSilence := p.MinSilence
	if minSilence == 0 {
		minSilence = DefaultMinSilence
	}

	threshold := utils.DBToLinear(p.ThresholdDB)
	minRun := max(1, int(minSilence.Seconds()*float64(buf.SampleRate())))
	samples, _ := buf.Channel(0)
	frames := len(samples)

	var bounds []int
	closeRun := func(start, end int) {
		if end-start < minRun {
			return
		}
		mid := start + (end-start)/2
		if mid > 0 && mid < frames && (len(bounds) == 0 || mid > bounds[len(bounds)-1]) {
			bounds = append(bounds, mid)
		}
	}

	runStart := -1
	for i, s := range samples {
		if math.Abs(s) < threshold {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			closeRun(runStart, i)
			runStart = -1
		}
	}
	if runStart >= 0 {
		closeRun(runStart, frames)
	}

	return bounds, nil
}

// splitAt cuts buf at the given increasing frame indices.
func splitAt(buf *audio.Buffer, bounds []int) ([]*audio.Buffer, error) {
	parts := make([]*audio.Buffer, 0, len(bounds)+1)
	start := 0

	for _, end := range append(bounds, buf.Frames()) {
		part, err := buf.Slice(start, end)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
		start = end
	}

	return parts, nil
}

// Concat joins buffers end to end. All parts must share the sample rate
// and channel count.
func Concat(parts ...*audio.Buffer) (*audio.Buffer, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("nothing to concatenate: %w", audio.ErrInvalidParameter)
	}

	first := parts[0]
	total := 0
	for i, p := range parts {
		if p.SampleRate() != first.SampleRate() {
			return nil, fmt.Errorf("part %d is %d Hz, want %d Hz: %w",
				i, p.SampleRate(), first.SampleRate(), audio.ErrInvalidParameter)
		}
		if p.Channels() != first.Channels() {
			return nil, fmt.Errorf("part %d has %d channels, want %d: %w",
				i, p.Channels(), first.Channels(), audio.ErrChannelCount)
		}
		total += p.Frames()
	}

	out, err := audio.NewBuffer(first.Channels(), total, first.SampleRate())
	if err != nil {
		return nil, err
	}

	dst := channelData(out)
	offset := 0
	for _, p := range parts {
		for c, src := range channelData(p) {
			copy(dst[c][offset:], src)
		}
		offset += p.Frames()
	}

	return out, nil
}
