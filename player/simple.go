// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ik5/loudplayer/audio"
	"github.com/ik5/loudplayer/output"
)

// Opener produces a fresh decoded stream of a bundled asset. Closing the
// returned source releases everything behind it.
type Opener func() (audio.Source, error)

// Simple plays a single asset without the loudness chain. Stop discards
// the stream and opens a new one instead of seeking.
type Simple struct {
	dev  output.Device
	open Opener
	log  *log.Logger

	src     audio.Source
	player  output.Player
	playing bool
}

func NewSimple(dev output.Device, open Opener, logger *log.Logger) (*Simple, error) {
	if open == nil {
		return nil, ErrNoAsset
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	s := &Simple{dev: dev, open: open, log: logger}
	if err := s.prepare(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Simple) prepare() error {
	src, err := s.open()
	if err != nil {
		return fmt.Errorf("opening asset: %w", err)
	}

	p, err := s.dev.NewPlayer(src, func(err error) {
		if err != nil {
			s.log.Printf("simple: playback ended: %v", err)
		}
	})
	if err != nil {
		_ = src.Close()
		return err
	}

	s.src = src
	s.player = p

	return nil
}

func (s *Simple) release() error {
	var errs []error
	if s.player != nil {
		s.player.Pause()
		errs = append(errs, s.player.Close())
		s.player = nil
	}
	if s.src != nil {
		errs = append(errs, s.src.Close())
		s.src = nil
	}
	s.playing = false

	return errors.Join(errs...)
}

func (s *Simple) Playing() bool { return s.playing }

// Play is fire-and-forget like Controller.Play.
func (s *Simple) Play() {
	if s.player == nil {
		return
	}
	if s.dev.Suspended() {
		if err := s.dev.Resume(); err != nil {
			s.log.Printf("simple: resume: %v", err)
		}
	}
	s.player.Play()
	s.playing = s.player.IsPlaying()
}

func (s *Simple) Pause() {
	if s.player == nil {
		return
	}
	s.player.Pause()
	s.playing = false
}

// Stop tears the stream down and reopens the asset from the start.
func (s *Simple) Stop() error {
	if err := s.release(); err != nil {
		s.log.Printf("simple: release: %v", err)
	}

	return s.prepare()
}

func (s *Simple) Close() error {
	return s.release()
}
