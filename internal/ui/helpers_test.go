// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/loudplayer/audio"
	"github.com/ik5/loudplayer/formats/wav"
	"github.com/ik5/loudplayer/graph"
	"github.com/ik5/loudplayer/output"
	"github.com/ik5/loudplayer/player"
	"github.com/ik5/loudplayer/playlist"
)

type stubPlayer struct {
	onEnd   func(error)
	playing bool
}

func (p *stubPlayer) Play()           { p.playing = true }
func (p *stubPlayer) Pause()          { p.playing = false }
func (p *stubPlayer) IsPlaying() bool { return p.playing }
func (p *stubPlayer) Close() error    { return nil }

type stubDevice struct {
	players   []*stubPlayer
	suspended bool
}

func (d *stubDevice) SampleRate() int { return 48000 }
func (d *stubDevice) Channels() int   { return 2 }
func (d *stubDevice) Suspend() error  { d.suspended = true; return nil }
func (d *stubDevice) Resume() error   { d.suspended = false; return nil }
func (d *stubDevice) Suspended() bool { return d.suspended }

func (d *stubDevice) NewPlayer(_ audio.Source, onEnd func(error)) (output.Player, error) {
	p := &stubPlayer{onEnd: onEnd}
	d.players = append(d.players, p)

	return p, nil
}

func testTracks(t *testing.T, names ...string) []playlist.Track {
	t.Helper()

	samples := make([]int16, 48000*2)
	buf := new(bytes.Buffer)
	if err := wav.WriteWAV16(buf, 48000, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	out := make([]playlist.Track, len(names))
	for i, name := range names {
		out[i] = playlist.BytesTrack{Label: name, Data: buf.Bytes()}
	}

	return out
}

func newTestModel(t *testing.T, names ...string) (Model, *player.Controller, *stubDevice) {
	t.Helper()

	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	dev := &stubDevice{suspended: true}
	ctl := player.New(dev, graph.New(reg, graph.DefaultConfig(), graph.DefaultSettings()), player.Config{})
	t.Cleanup(ctl.Close)

	if len(names) > 0 {
		if err := ctl.SelectFiles(testTracks(t, names...)); err != nil {
			t.Fatalf("SelectFiles() error = %v", err)
		}
	}

	return NewModel(ctl, 0, nil), ctl, dev
}

func keys(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys through Update in order.
func press(t *testing.T, m Model, ks ...string) Model {
	t.Helper()

	for _, k := range ks {
		next, _ := m.Update(keys(k))
		m = next.(Model)
	}

	return m
}
