// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/loudplayer/audio"
	"github.com/ik5/loudplayer/internal/audiotest"
	"github.com/ik5/loudplayer/player"
)

func TestSimpleModel(t *testing.T) {
	t.Parallel()

	dev := &stubDevice{suspended: true}
	opens := 0
	failNext := false
	open := func() (audio.Source, error) {
		if failNext {
			return nil, errors.New("asset missing")
		}
		opens++
		return audiotest.NewSilentSource(48000, 2, 480), nil
	}

	p, err := player.NewSimple(dev, open, nil)
	if err != nil {
		t.Fatalf("NewSimple() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })

	var m tea.Model = NewSimpleModel(p, "jingle.wav")

	m, _ = m.Update(keys("p"))
	if !p.Playing() {
		t.Error("p did not play")
	}
	if !strings.Contains(m.View(), "playing") {
		t.Errorf("view = %q", m.View())
	}

	m, _ = m.Update(keys(" "))
	if p.Playing() {
		t.Error("space did not pause")
	}

	m, _ = m.Update(keys("s"))
	if opens != 2 {
		t.Errorf("asset opened %d times, want 2", opens)
	}

	failNext = true
	m, _ = m.Update(keys("s"))
	if !strings.Contains(m.View(), "asset missing") {
		t.Errorf("stop error not shown: %q", m.View())
	}

	if _, cmd := m.Update(keys("q")); cmd == nil {
		t.Error("q did not quit")
	}
}
