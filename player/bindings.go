// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"

	"github.com/ik5/loudplayer/graph"
	"github.com/ik5/loudplayer/playlist"
)

// Control identifies a user-facing control.
type Control int

const (
	ControlPlay Control = iota
	ControlPause
	ControlTogglePlay
	ControlStop
	ControlPrev
	ControlNext
	ControlSeek
	ControlBoost
	ControlBass
	ControlMid
	ControlTreble
	ControlLimiter
	ControlResetBands
	ControlFiles
	ControlPlaylistItem
	ControlVisible
)

var controlNames = map[Control]string{
	ControlPlay:         "play",
	ControlPause:        "pause",
	ControlTogglePlay:   "toggle-play",
	ControlStop:         "stop",
	ControlPrev:         "prev",
	ControlNext:         "next",
	ControlSeek:         "seek",
	ControlBoost:        "boost",
	ControlBass:         "bass",
	ControlMid:          "mid",
	ControlTreble:       "treble",
	ControlLimiter:      "limiter",
	ControlResetBands:   "reset-bands",
	ControlFiles:        "files",
	ControlPlaylistItem: "playlist-item",
	ControlVisible:      "visible",
}

func (c Control) String() string {
	if name, ok := controlNames[c]; ok {
		return name
	}

	return fmt.Sprintf("control(%d)", int(c))
}

// SeekSteps is the resolution of the seek control; a seek Input.Value
// runs from 0 to SeekSteps.
const SeekSteps = 1000

// Input carries the value of a control event. Which field is read
// depends on the control.
type Input struct {
	Value  float64
	On     bool
	Index  int
	Tracks []playlist.Track
}

type Handler func(Input) error

// Bindings maps each control to the controller operation behind it.
type Bindings map[Control]Handler

func NewBindings(c *Controller) Bindings {
	band := func(b graph.Band) Handler {
		return func(in Input) error {
			c.SetBand(b, in.Value)
			return nil
		}
	}
	do := func(fn func()) Handler {
		return func(Input) error {
			fn()
			return nil
		}
	}

	return Bindings{
		ControlPlay:       do(c.Play),
		ControlPause:      do(c.Pause),
		ControlTogglePlay: do(c.TogglePlay),
		ControlStop:       do(c.Stop),
		ControlPrev:       func(Input) error { return c.Prev() },
		ControlNext:       func(Input) error { return c.Next() },
		ControlSeek: func(in Input) error {
			c.Seek(in.Value / SeekSteps)
			return nil
		},
		ControlBoost: func(in Input) error {
			c.SetBoost(in.Value)
			return nil
		},
		ControlBass:   band(graph.Bass),
		ControlMid:    band(graph.Mid),
		ControlTreble: band(graph.Treble),
		ControlLimiter: func(in Input) error {
			c.ToggleLimiter(in.On)
			return nil
		},
		ControlResetBands:   do(c.ResetBands),
		ControlFiles:        func(in Input) error { return c.SelectFiles(in.Tracks) },
		ControlPlaylistItem: func(in Input) error { return c.SelectIndex(in.Index) },
		ControlVisible:      do(c.Resume),
	}
}

// Dispatch runs the handler bound to ctl.
func (b Bindings) Dispatch(ctl Control, in Input) error {
	h, ok := b[ctl]
	if !ok {
		return fmt.Errorf("%s: %w", ctl, ErrUnboundControl)
	}

	return h(in)
}
