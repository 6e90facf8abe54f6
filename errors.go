// SPDX-License-Identifier: EPL-2.0

package audfx

import "errors"

// ErrNilBuffer is returned when a stage is given, or returns, no buffer.
var ErrNilBuffer = errors.New("nil audio buffer")
