// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var ErrFormatMismatch = errors.New("source format does not match the device")
