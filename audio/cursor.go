// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Cursor wraps a Source and counts the frames read through it, so the
// playback position can be queried from another goroutine while the
// output pulls samples.
type Cursor struct {
	src    Source
	seeker Seeker
	pos    atomic.Int64
}

func NewCursor(src Source) *Cursor {
	c := &Cursor{src: src}
	if s, ok := src.(Seeker); ok {
		c.seeker = s
	}

	return c
}

func (c *Cursor) SampleRate() int { return c.src.SampleRate() }
func (c *Cursor) Channels() int   { return c.src.Channels() }
func (c *Cursor) BufSize() int    { return c.src.BufSize() }

func (c *Cursor) Close() error {
	if err := c.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (c *Cursor) ReadSamples(dst []float32) (int, error) {
	n, err := c.src.ReadSamples(dst)
	if n > 0 {
		c.pos.Add(int64(n / c.src.Channels()))
	}

	return n, err
}

// Frame is the index of the next frame to be read.
func (c *Cursor) Frame() int64 { return c.pos.Load() }

// Frames is the total length in frames, or -1 when unknown.
func (c *Cursor) Frames() int64 {
	if c.seeker == nil {
		return -1
	}

	return c.seeker.Frames()
}

// Position is the elapsed time of the frames read so far.
func (c *Cursor) Position() time.Duration {
	return framesToDuration(c.pos.Load(), c.src.SampleRate())
}

// Duration reports the total length, and false while it is unknown.
func (c *Cursor) Duration() (time.Duration, bool) {
	frames := c.Frames()
	if frames < 0 {
		return 0, false
	}

	return framesToDuration(frames, c.src.SampleRate()), true
}

// SeekFrame moves the underlying source. Frames past the end are clamped.
func (c *Cursor) SeekFrame(frame int64) error {
	total := c.Frames()
	if total < 0 {
		return ErrNotSeekable
	}

	frame = min(max(frame, 0), total)
	if err := c.seeker.SeekFrame(frame); err != nil {
		return fmt.Errorf("seek to frame %d: %w", frame, err)
	}
	c.pos.Store(frame)

	return nil
}

func framesToDuration(frames int64, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}

	return time.Duration(frames) * time.Second / time.Duration(rate)
}
