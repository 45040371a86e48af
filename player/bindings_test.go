// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/loudplayer/graph"
)

func TestBindings_CoverEveryControl(t *testing.T) {
	t.Parallel()

	b := NewBindings(newTestController(newFakeDevice()))
	for ctl := range controlNames {
		if _, ok := b[ctl]; !ok {
			t.Errorf("%s has no handler", ctl)
		}
	}
}

func TestBindings_Dispatch(t *testing.T) {
	t.Parallel()

	dev := newFakeDevice()
	c := newTestController(dev)
	defer c.Close()
	b := NewBindings(c)

	if err := b.Dispatch(ControlFiles, Input{Tracks: tracks(t, "a.wav", "b.wav")}); err != nil {
		t.Fatalf("Dispatch(files) error = %v", err)
	}
	if got := currentName(t, c); got != "a.wav" {
		t.Fatalf("current = %q, want a.wav", got)
	}

	steps := []struct {
		ctl   Control
		in    Input
		check func() bool
	}{
		{ControlPause, Input{}, func() bool { return !c.Playing() }},
		{ControlPlay, Input{}, func() bool { return c.Playing() }},
		{ControlTogglePlay, Input{}, func() bool { return !c.Playing() }},
		{ControlSeek, Input{Value: 500}, func() bool { return c.Position() == 500*time.Millisecond }},
		{ControlStop, Input{}, func() bool { return c.Position() == 0 && !c.Playing() }},
		{ControlBoost, Input{Value: 1.5}, func() bool { return c.Graph().Settings().Boost == 1.5 }},
		{ControlBass, Input{Value: 4}, func() bool { return c.Graph().Settings().Bass == 4 }},
		{ControlMid, Input{Value: -2}, func() bool { return c.Graph().Settings().Mid == -2 }},
		{ControlTreble, Input{Value: 7.5}, func() bool { return c.Graph().Settings().Treble == 7.5 }},
		{ControlResetBands, Input{}, func() bool {
			s := c.Graph().Settings()
			return s.Bass == 0 && s.Mid == 0 && s.Treble == 0
		}},
		{ControlLimiter, Input{On: false}, func() bool { return !c.Graph().Settings().Limiter }},
		{ControlNext, Input{}, func() bool { return currentName(t, c) == "b.wav" }},
		{ControlPrev, Input{}, func() bool { return currentName(t, c) == "a.wav" }},
		{ControlPlaylistItem, Input{Index: 1}, func() bool { return currentName(t, c) == "b.wav" }},
		{ControlVisible, Input{}, func() bool { return !dev.suspended }},
	}

	for _, s := range steps {
		if err := b.Dispatch(s.ctl, s.in); err != nil {
			t.Fatalf("Dispatch(%s) error = %v", s.ctl, err)
		}
		if !s.check() {
			t.Fatalf("Dispatch(%s) did not take effect", s.ctl)
		}
	}

	if got := c.Graph().Settings().Band(graph.Treble); got != 0 {
		t.Errorf("treble = %v after reset, want 0", got)
	}
}

func TestBindings_Unbound(t *testing.T) {
	t.Parallel()

	b := Bindings{}
	err := b.Dispatch(ControlPlay, Input{})
	if !errors.Is(err, ErrUnboundControl) {
		t.Errorf("Dispatch() error = %v, want ErrUnboundControl", err)
	}
}

func TestControl_String(t *testing.T) {
	t.Parallel()

	if got := ControlBoost.String(); got != "boost" {
		t.Errorf("ControlBoost.String() = %q", got)
	}
	if got := Control(99).String(); got != "control(99)" {
		t.Errorf("Control(99).String() = %q", got)
	}
}
