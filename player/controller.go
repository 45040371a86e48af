// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ik5/loudplayer/graph"
	"github.com/ik5/loudplayer/output"
	"github.com/ik5/loudplayer/playlist"
)

const defaultEventBuffer = 16

// Session is the mutable playback state owned by a Controller.
type Session struct {
	Playlist   *playlist.Playlist
	Playing    bool
	Generation uint64
	LastErr    error

	// Drained is set once the chain has no more samples; the device may
	// still be playing out its buffer.
	Drained bool

	player output.Player
}

type Config struct {
	Logger      *log.Logger
	EventBuffer int
}

type Controller struct {
	dev    output.Device
	graph  *graph.Graph
	events chan Event
	log    *log.Logger

	session Session
}

func New(dev output.Device, g *graph.Graph, cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	size := cfg.EventBuffer
	if size <= 0 {
		size = defaultEventBuffer
	}

	return &Controller{
		dev:     dev,
		graph:   g,
		events:  make(chan Event, size),
		log:     logger,
		session: Session{Playlist: playlist.New()},
	}
}

// Events delivers end-of-track notifications from the audio goroutine.
func (c *Controller) Events() <-chan Event { return c.events }

// Session exposes the state for rendering. Callers must not mutate it.
func (c *Controller) Session() *Session { return &c.session }

func (c *Controller) Graph() *graph.Graph { return c.graph }

func (c *Controller) Playing() bool { return c.session.Playing }

// Current returns the track of the live chain.
func (c *Controller) Current() (playlist.Track, bool) {
	chain := c.graph.Chain()
	if chain == nil {
		return nil, false
	}

	return chain.Track(), true
}

func (c *Controller) Position() time.Duration {
	if chain := c.graph.Chain(); chain != nil {
		return chain.Position()
	}

	return 0
}

func (c *Controller) Duration() (time.Duration, bool) {
	if chain := c.graph.Chain(); chain != nil {
		return chain.Duration()
	}

	return 0, false
}

// TimeUpdate snapshots the playback position of the live chain.
func (c *Controller) TimeUpdate() Event {
	d, ok := c.Duration()

	return Event{
		Type:          EventTimeUpdate,
		Generation:    c.session.Generation,
		Position:      c.Position(),
		Duration:      d,
		DurationKnown: ok,
	}
}

// Play resumes the output context if needed and starts the player.
// Failures are logged, not returned; Playing reports what the player
// actually did.
func (c *Controller) Play() {
	if c.session.player == nil {
		return
	}
	c.Resume()
	c.session.player.Play()
	c.session.Playing = c.session.player.IsPlaying()
}

func (c *Controller) Pause() {
	if c.session.player == nil {
		return
	}
	c.session.player.Pause()
	c.session.Playing = false
}

// TogglePlay plays when paused and pauses when playing.
func (c *Controller) TogglePlay() {
	if c.session.Playing {
		c.Pause()
		return
	}
	c.Play()
}

// Stop pauses and rewinds the current track.
func (c *Controller) Stop() {
	c.Pause()
	c.Seek(0)
}

// Seek jumps to fraction of the track; it does nothing while the length
// is unknown.
func (c *Controller) Seek(fraction float64) {
	chain := c.graph.Chain()
	if chain == nil {
		return
	}
	if _, err := chain.Seek(fraction); err != nil {
		c.log.Printf("player: seek %.3f: %v", fraction, err)
	}
}

// Resume wakes a suspended output context. Safe to call at any time.
func (c *Controller) Resume() {
	if !c.dev.Suspended() {
		return
	}
	if err := c.dev.Resume(); err != nil {
		c.log.Printf("player: resume: %v", err)
	}
}

// SelectFiles replaces the playlist and starts its first track.
func (c *Controller) SelectFiles(tracks []playlist.Track) error {
	c.session.Playlist.Load(tracks)
	if c.session.Playlist.Len() == 0 {
		c.teardown()
		return nil
	}

	return c.load()
}

func (c *Controller) Next() error {
	if !c.session.Playlist.Next() {
		return nil
	}

	return c.load()
}

func (c *Controller) Prev() error {
	if !c.session.Playlist.Prev() {
		return nil
	}

	return c.load()
}

// SelectIndex starts the playlist entry at i.
func (c *Controller) SelectIndex(i int) error {
	if !c.session.Playlist.Select(i) {
		return nil
	}

	return c.load()
}

// OnTrackEnded advances to the next track, wrapping at the end.
func (c *Controller) OnTrackEnded() error {
	return c.Next()
}

// HandleEvent applies an event read from Events. Events from superseded
// chains are dropped.
func (c *Controller) HandleEvent(ev Event) error {
	if ev.Generation != c.session.Generation {
		return nil
	}

	switch ev.Type {
	case EventTrackEnded:
		if ev.Err != nil {
			c.log.Printf("player: track ended with error: %v", ev.Err)
		}
		c.session.Drained = true
		return c.Poll()
	case EventTimeUpdate:
		return c.Poll()
	}

	return nil
}

// Poll advances to the next track once a drained chain has finished
// playing out of the device buffer. The owner calls it on every clock
// tick. A track paused by the user is not advanced until it is played
// again and runs out.
func (c *Controller) Poll() error {
	p := c.session.player
	if !c.session.Drained || p == nil || !c.session.Playing || p.IsPlaying() {
		return nil
	}

	return c.OnTrackEnded()
}

func (c *Controller) SetBoost(gain float64)           { c.graph.SetBoost(gain) }
func (c *Controller) SetBand(b graph.Band, db float64) { c.graph.SetBand(b, db) }
func (c *Controller) ResetBands()                     { c.graph.ResetBands() }
func (c *Controller) ToggleLimiter(on bool)           { c.graph.ToggleLimiter(on) }

// Close stops playback and releases the chain.
func (c *Controller) Close() {
	c.teardown()
}

func (c *Controller) teardown() {
	if p := c.session.player; p != nil {
		p.Pause()
		if err := p.Close(); err != nil {
			c.log.Printf("player: close player: %v", err)
		}
		c.session.player = nil
	}
	c.graph.Teardown()
	c.session.Playing = false
	c.session.Drained = false
}

// load rebuilds the chain for the current playlist entry and plays it.
func (c *Controller) load() error {
	c.teardown()
	c.session.Generation++
	c.session.LastErr = nil

	track, ok := c.session.Playlist.Current()
	if !ok {
		return nil
	}

	chain, err := c.graph.Build(track)
	if err != nil {
		c.session.LastErr = err
		return err
	}

	gen := c.session.Generation
	p, err := c.dev.NewPlayer(chain, func(err error) {
		c.notify(Event{Type: EventTrackEnded, Generation: gen, Err: err})
	})
	if err != nil {
		c.graph.Teardown()
		c.session.LastErr = fmt.Errorf("%s: %w", track.Name(), err)
		return c.session.LastErr
	}

	c.session.player = p
	c.log.Printf("player: loaded %q (generation %d)", track.Name(), gen)
	c.Play()

	return nil
}

// notify runs on the audio goroutine and must not block it.
func (c *Controller) notify(ev Event) {
	select {
	case c.events <- ev:
	default:
		c.log.Printf("player: event queue full, dropped %s", ev.Type)
	}
}
