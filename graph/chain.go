// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/ik5/loudplayer/audio"
	"github.com/ik5/loudplayer/effects"
	"github.com/ik5/loudplayer/playlist"
)

// Chain is one built signal path. It is itself an audio.Source, read by
// the output device; Seek and Close may be called from other goroutines.
type Chain struct {
	track playlist.Track
	input io.Closer

	cursor    *audio.Cursor
	resampler *audio.Resampler
	gain      *effects.Gain
	bands     [len(Bands)]*effects.Biquad
	shaper    *effects.WaveShaper
	analyser  *effects.Analyser

	mu     sync.Mutex
	tail   audio.Source
	closed bool
}

func (c *Chain) SampleRate() int { return c.tail.SampleRate() }
func (c *Chain) Channels() int   { return c.tail.Channels() }
func (c *Chain) BufSize() int    { return c.tail.BufSize() }

func (c *Chain) ReadSamples(dst []float32) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, io.EOF
	}

	return c.tail.ReadSamples(dst)
}

// Close releases the decoder and the track's input. Later reads report
// io.EOF. Closing twice is a no-op.
func (c *Chain) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	return errors.Join(c.tail.Close(), c.input.Close())
}

func (c *Chain) Track() playlist.Track        { return c.track }
func (c *Chain) Analyser() *effects.Analyser { return c.analyser }

// Position is the playback time of the decoder cursor.
func (c *Chain) Position() time.Duration { return c.cursor.Position() }

// Duration reports the track length, and false when the decoder cannot
// tell.
func (c *Chain) Duration() (time.Duration, bool) { return c.cursor.Duration() }

// Seek moves to fraction (clamped to [0, 1]) of the track. It reports
// false and does nothing when the length is unknown.
func (c *Chain) Seek(fraction float64) (bool, error) {
	frames := c.cursor.Frames()
	if frames < 0 {
		return false, nil
	}
	fraction = min(max(fraction, 0), 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, ErrChainClosed
	}
	if err := c.cursor.SeekFrame(int64(fraction * float64(frames))); err != nil {
		return false, err
	}
	if c.resampler != nil {
		c.resampler.Reset()
	}
	for _, b := range c.bands {
		b.Reset()
	}
	c.shaper.Reset()
	c.analyser.Reset()

	return true, nil
}
