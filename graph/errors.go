// SPDX-License-Identifier: EPL-2.0

package graph

import "errors"

var (
	ErrNoTrack     = errors.New("no track to build")
	ErrChainClosed = errors.New("chain is closed")
)
