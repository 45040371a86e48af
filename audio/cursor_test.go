// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/loudplayer/internal/audiotest"
)

func TestCursor_CountsFrames(t *testing.T) {
	t.Parallel()

	c := NewCursor(audiotest.NewSilentSource(1000, 2, 3000))

	buf := make([]float32, 1000)
	for range 3 {
		if _, err := c.ReadSamples(buf); err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if c.Frame() != 1500 {
		t.Errorf("Frame() = %d, want 1500", c.Frame())
	}
	if c.Position() != 1500*time.Millisecond {
		t.Errorf("Position() = %v, want 1.5s", c.Position())
	}
}

func TestCursor_UnknownDuration(t *testing.T) {
	t.Parallel()

	c := NewCursor(audiotest.NewSilentSource(1000, 1, 10))

	if _, ok := c.Duration(); ok {
		t.Error("Duration() ok = true for non-seekable source")
	}
	if c.Frames() != -1 {
		t.Errorf("Frames() = %d, want -1", c.Frames())
	}
	if err := c.SeekFrame(5); !errors.Is(err, ErrNotSeekable) {
		t.Errorf("SeekFrame() error = %v, want ErrNotSeekable", err)
	}
}

func TestCursor_Seek(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		frame int64
		want  int64
	}{
		{"middle", 400, 400},
		{"start", 0, 0},
		{"past end clamps", 5000, 1000},
		{"negative clamps", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewCursor(audiotest.Seekable(audiotest.NewRampSource(1000, 1, 1000)))

			d, ok := c.Duration()
			if !ok || d != time.Second {
				t.Fatalf("Duration() = %v, %v; want 1s, true", d, ok)
			}

			if err := c.SeekFrame(tt.frame); err != nil {
				t.Fatalf("SeekFrame() error = %v", err)
			}
			if c.Frame() != tt.want {
				t.Errorf("Frame() = %d, want %d", c.Frame(), tt.want)
			}
		})
	}
}
