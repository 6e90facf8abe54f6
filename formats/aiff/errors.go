// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not a FORM/AIFF stream.
	ErrNotAiffFile = errors.New("not an AIFF file")
	// ErrUnsupportedEncoding indicates a sample format the decoder cannot scale.
	ErrUnsupportedEncoding = errors.New("unsupported AIFF encoding")
)
