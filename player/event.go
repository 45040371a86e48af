// SPDX-License-Identifier: EPL-2.0

package player

import "time"

// EventType enumerates controller events
type EventType int

const (
	EventTrackEnded EventType = iota
	EventTimeUpdate
)

func (t EventType) String() string {
	switch t {
	case EventTrackEnded:
		return "track-ended"
	case EventTimeUpdate:
		return "time-update"
	}

	return "unknown"
}

// Event is reported by the controller. Generation identifies the chain
// that produced it, so events from a superseded chain can be ignored.
type Event struct {
	Type       EventType
	Generation uint64
	Err        error

	Position      time.Duration
	Duration      time.Duration
	DurationKnown bool
}
