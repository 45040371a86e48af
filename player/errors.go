// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

var (
	ErrUnboundControl = errors.New("control has no handler")
	ErrNoAsset        = errors.New("no asset opener")
)
