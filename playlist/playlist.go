// SPDX-License-Identifier: EPL-2.0

// Package playlist keeps the ordered list of selected tracks and the
// current position in it.
package playlist

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Track is a selected piece of audio: a display name and a way to open
// its bytes. Open may be called once per chain build.
type Track interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// FileTrack is a Track backed by a path on disk.
type FileTrack struct {
	Path string
}

func (f FileTrack) Name() string { return filepath.Base(f.Path) }

func (f FileTrack) Open() (io.ReadCloser, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open track: %w", err)
	}

	return file, nil
}

// BytesTrack is a Track held in memory, such as a bundled asset.
type BytesTrack struct {
	Label string
	Data  []byte
}

func (b BytesTrack) Name() string { return b.Label }

// Open returns a reader that also implements io.Seeker, so decoders can
// measure and seek the stream.
func (b BytesTrack) Open() (io.ReadCloser, error) {
	return bytesReadCloser{bytes.NewReader(b.Data)}, nil
}

type bytesReadCloser struct {
	*bytes.Reader
}

func (bytesReadCloser) Close() error { return nil }

// Files wraps paths as tracks, keeping their order.
func Files(paths ...string) []Track {
	out := make([]Track, len(paths))
	for i, p := range paths {
		out[i] = FileTrack{Path: p}
	}

	return out
}

// Playlist is an ordered list of tracks with a current index. The index
// is -1 exactly when the list is empty.
//
// A Playlist is not safe for concurrent use.
type Playlist struct {
	tracks []Track
	index  int
}

func New(tracks ...Track) *Playlist {
	p := &Playlist{}
	p.Load(tracks)

	return p
}

// Load replaces the contents and selects the first track.
func (p *Playlist) Load(tracks []Track) {
	p.tracks = append([]Track(nil), tracks...)
	p.index = -1
	if len(p.tracks) > 0 {
		p.index = 0
	}
}

func (p *Playlist) Len() int   { return len(p.tracks) }
func (p *Playlist) Index() int { return p.index }

// Tracks returns a copy of the list.
func (p *Playlist) Tracks() []Track {
	return append([]Track(nil), p.tracks...)
}

// Current returns the selected track, or false when the list is empty.
func (p *Playlist) Current() (Track, bool) {
	if p.index < 0 {
		return nil, false
	}

	return p.tracks[p.index], true
}

// Next moves forward, wrapping from the last track to the first.
func (p *Playlist) Next() bool {
	if len(p.tracks) == 0 {
		return false
	}
	p.index = (p.index + 1) % len(p.tracks)

	return true
}

// Prev moves back, wrapping from the first track to the last.
func (p *Playlist) Prev() bool {
	if len(p.tracks) == 0 {
		return false
	}
	p.index = (p.index - 1 + len(p.tracks)) % len(p.tracks)

	return true
}

// Select jumps to i; out of range indices leave the selection unchanged.
func (p *Playlist) Select(i int) bool {
	if i < 0 || i >= len(p.tracks) {
		return false
	}
	p.index = i

	return true
}
