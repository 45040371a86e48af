// SPDX-License-Identifier: EPL-2.0

// Package ui provides the Bubbletea terminal user interface for loudplayer
package ui

import (
	"io"
	"log"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/loudplayer/graph"
	"github.com/ik5/loudplayer/player"
)

const (
	waveWidth  = 64
	waveHeight = 7
	seekStep   = 25
)

// slider is one adjustable chain setting.
type slider struct {
	control        player.Control
	label          string
	band           graph.Band
	min, max, step float64
}

var sliders = []slider{
	{control: player.ControlBoost, label: "Boost", min: 0, max: 4, step: 0.05},
	{control: player.ControlBass, label: "Bass", band: graph.Bass, min: -12, max: 12, step: 0.5},
	{control: player.ControlMid, label: "Mid", band: graph.Mid, min: -12, max: 12, step: 0.5},
	{control: player.ControlTreble, label: "Treble", band: graph.Treble, min: -12, max: 12, step: 0.5},
}

func (s slider) value(settings graph.Settings) float64 {
	if s.control == player.ControlBoost {
		return settings.Boost
	}

	return settings.Band(s.band)
}

func (s slider) display(v float64) string {
	if s.control == player.ControlBoost {
		return player.BoostLabel(v)
	}

	return player.BandLabel(v)
}

// nudge moves v by dir steps, snapped to the step grid and clamped.
func (s slider) nudge(v float64, dir int) float64 {
	v = math.Round((v+float64(dir)*s.step)/s.step) * s.step
	v = math.Round(v*1000) / 1000

	return min(max(v, s.min), s.max)
}

// Model is the Bubbletea model for the playlist player.
type Model struct {
	ctl      *player.Controller
	bindings player.Bindings
	interval time.Duration
	log      *log.Logger

	Width  int
	Height int

	focus   int
	cursor  int
	lastGen uint64
	status  string
	clock   player.Event
	wave    []byte
}

func NewModel(ctl *player.Controller, interval time.Duration, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	m := Model{
		ctl:      ctl,
		bindings: player.NewBindings(ctl),
		interval: interval,
		log:      logger,
		wave:     make([]byte, waveWidth*4),
	}
	m.refresh()

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.ctl.Events()), tick(m.interval))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.FocusMsg:
		m.dispatch(player.ControlVisible, player.Input{})

	case TickMsg:
		m.setErr(m.ctl.Poll())
		m.refresh()
		return m, tick(m.interval)

	case EventMsg:
		ev := player.Event(msg)
		m.log.Printf("ui: event %s (generation %d)", ev.Type, ev.Generation)
		m.setErr(m.ctl.HandleEvent(ev))
		m.refresh()
		return m, waitForEvent(m.ctl.Events())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ":
		m.dispatch(player.ControlTogglePlay, player.Input{})
	case "p":
		m.dispatch(player.ControlPrev, player.Input{})
	case "n":
		m.dispatch(player.ControlNext, player.Input{})
	case "s":
		m.dispatch(player.ControlStop, player.Input{})

	case "left", "right":
		v := player.SeekValue(m.clock.Position, m.clock.Duration, m.clock.DurationKnown)
		if msg.String() == "left" {
			v -= seekStep
		} else {
			v += seekStep
		}
		m.dispatch(player.ControlSeek, player.Input{Value: float64(min(max(v, 0), player.SeekSteps))})

	case "tab":
		m.focus = (m.focus + 1) % len(sliders)
	case "shift+tab":
		m.focus = (m.focus + len(sliders) - 1) % len(sliders)
	case "+", "=":
		m.adjust(1)
	case "-", "_":
		m.adjust(-1)

	case "l":
		on := !m.ctl.Graph().Settings().Limiter
		m.dispatch(player.ControlLimiter, player.Input{On: on})
	case "r":
		m.dispatch(player.ControlResetBands, player.Input{})

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.ctl.Session().Playlist.Len()-1 {
			m.cursor++
		}
	case "enter":
		m.dispatch(player.ControlPlaylistItem, player.Input{Index: m.cursor})
	}

	return m, nil
}

func (m *Model) adjust(dir int) {
	s := sliders[m.focus]
	v := s.nudge(s.value(m.ctl.Graph().Settings()), dir)
	m.dispatch(s.control, player.Input{Value: v})
}

func (m *Model) dispatch(ctl player.Control, in player.Input) {
	m.log.Printf("ui: %s %+v", ctl, in.Value)
	m.setErr(m.bindings.Dispatch(ctl, in))
	m.refresh()
}

func (m *Model) setErr(err error) {
	if err != nil {
		m.status = err.Error()
		m.log.Printf("ui: %v", err)
	}
}

// refresh samples the clock and the analyser, and follows the playlist
// cursor to a newly loaded track.
func (m *Model) refresh() {
	m.clock = m.ctl.TimeUpdate()

	s := m.ctl.Session()
	if s.Generation != m.lastGen {
		m.lastGen = s.Generation
		m.cursor = max(s.Playlist.Index(), 0)
		if s.LastErr == nil {
			m.status = ""
		}
	}

	m.wave = m.wave[:cap(m.wave)]
	if chain := m.ctl.Graph().Chain(); chain != nil {
		m.wave = m.wave[:chain.Analyser().ByteTimeDomainData(m.wave)]
		return
	}
	m.wave = m.wave[:0]
}

func (m Model) View() string {
	return renderPlayerView(m)
}
