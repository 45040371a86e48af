// SPDX-License-Identifier: EPL-2.0

package player

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ik5/loudplayer/audio"
	"github.com/ik5/loudplayer/formats/wav"
	"github.com/ik5/loudplayer/graph"
	"github.com/ik5/loudplayer/output"
	"github.com/ik5/loudplayer/playlist"
)

var errFake = errors.New("fake failure")

type fakePlayer struct {
	src     audio.Source
	onEnd   func(error)
	playing bool
	plays   int
	pauses  int
	closed  int
	refuse  bool
}

func (p *fakePlayer) Play() {
	p.plays++
	if !p.refuse {
		p.playing = true
	}
}

func (p *fakePlayer) Pause()          { p.playing = false; p.pauses++ }
func (p *fakePlayer) IsPlaying() bool { return p.playing }

func (p *fakePlayer) Close() error {
	p.closed++
	return nil
}

type fakeDevice struct {
	players   []*fakePlayer
	suspended bool
	resumes   int
	resumeErr error
	playerErr error
	refuse    bool
}

func newFakeDevice() *fakeDevice { return &fakeDevice{suspended: true} }

func (d *fakeDevice) SampleRate() int { return 48000 }
func (d *fakeDevice) Channels() int   { return 2 }
func (d *fakeDevice) Suspended() bool { return d.suspended }

func (d *fakeDevice) NewPlayer(src audio.Source, onEnd func(error)) (output.Player, error) {
	if d.playerErr != nil {
		return nil, d.playerErr
	}
	p := &fakePlayer{src: src, onEnd: onEnd, refuse: d.refuse}
	d.players = append(d.players, p)

	return p, nil
}

func (d *fakeDevice) Suspend() error {
	d.suspended = true
	return nil
}

func (d *fakeDevice) Resume() error {
	d.resumes++
	if d.resumeErr != nil {
		return d.resumeErr
	}
	d.suspended = false

	return nil
}

func (d *fakeDevice) last() *fakePlayer {
	if len(d.players) == 0 {
		return nil
	}

	return d.players[len(d.players)-1]
}

func wavBytes(t *testing.T, frames int) []byte {
	t.Helper()

	samples := make([]int16, frames*2)
	for i := range samples {
		samples[i] = 4000
	}
	buf := new(bytes.Buffer)
	if err := wav.WriteWAV16(buf, 48000, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	return buf.Bytes()
}

// tracks returns one second long wav tracks with the given names.
func tracks(t *testing.T, names ...string) []playlist.Track {
	t.Helper()

	data := wavBytes(t, 48000)
	out := make([]playlist.Track, len(names))
	for i, name := range names {
		out[i] = playlist.BytesTrack{Label: name, Data: data}
	}

	return out
}

func newTestController(dev *fakeDevice) *Controller {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	g := graph.New(reg, graph.DefaultConfig(), graph.DefaultSettings())

	return New(dev, g, Config{EventBuffer: 4})
}
