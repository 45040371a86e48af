// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/loudplayer/audio"
)

// Player controls playback of one stream.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

// Device creates players and owns the shared output context.
type Device interface {
	SampleRate() int
	Channels() int
	// NewPlayer prepares src for playback without starting it. onEnd is
	// called from the audio goroutine when src is exhausted.
	NewPlayer(src audio.Source, onEnd func(error)) (Player, error)
	Suspend() error
	Resume() error
	Suspended() bool
}

type Config struct {
	SampleRate int
	Channels   int
	BufferSize time.Duration
	Logger     *log.Logger
}

// Oto is a Device on the system's default audio output.
type Oto struct {
	ctx        *oto.Context
	sampleRate int
	channels   int
	suspended  atomic.Bool
	log        *log.Logger
}

// Open creates the oto context and waits until the device is ready. The
// context is returned suspended.
func Open(cfg Config) (*Oto, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   cfg.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	d := &Oto{
		ctx:        ctx,
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		log:        logger,
	}
	if err := d.Suspend(); err != nil {
		logger.Printf("output: initial suspend: %v", err)
	}

	return d, nil
}

func (d *Oto) SampleRate() int { return d.sampleRate }
func (d *Oto) Channels() int   { return d.channels }

func (d *Oto) NewPlayer(src audio.Source, onEnd func(error)) (Player, error) {
	if src.SampleRate() != d.sampleRate || src.Channels() != d.channels {
		return nil, fmt.Errorf("%w: %d Hz %d ch, device %d Hz %d ch",
			ErrFormatMismatch, src.SampleRate(), src.Channels(), d.sampleRate, d.channels)
	}

	return &otoPlayer{Player: d.ctx.NewPlayer(NewReader(src, onEnd))}, nil
}

func (d *Oto) Suspend() error {
	if err := d.ctx.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	d.suspended.Store(true)

	return nil
}

func (d *Oto) Resume() error {
	if !d.suspended.Load() {
		return nil
	}
	if err := d.ctx.Resume(); err != nil {
		return fmt.Errorf("cannot resume oto context: %w", err)
	}
	d.suspended.Store(false)

	return nil
}

func (d *Oto) Suspended() bool { return d.suspended.Load() }

// Err reports a fatal context error, if any.
func (d *Oto) Err() error { return d.ctx.Err() }

type otoPlayer struct {
	*oto.Player
}

func (p *otoPlayer) Close() error {
	p.Pause()
	if err := p.Player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}

	return nil
}
