// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidParameter is returned when a buffer or stage receives an
	// out-of-domain parameter such as a non-positive sample rate.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrIndexOutOfRange is returned when accessing a channel beyond the
	// buffer's channel count.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrChannelCount is returned when a stage receives a buffer with a
	// channel layout it cannot process.
	ErrChannelCount = errors.New("unsupported channel count")

	// ErrInvalidRange is returned when a time range is empty or inverted.
	ErrInvalidRange = errors.New("invalid range")

	// ErrUnknownFormat is returned by the registry for unregistered formats.
	ErrUnknownFormat = errors.New("unknown audio format")
)
