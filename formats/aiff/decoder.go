// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/loudplayer/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	rs         io.ReadSeeker
	dec        aiffReader
	format     *goaudio.Format
	sampleRate int
	channels   int
	scale      float32
	frames     int64
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.readInts(len(dst))
	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v) * s.scale
	}

	return n, err
}

func (s *source) readInts(size int) (int, error) {
	if s.intBuf == nil || cap(s.intBuf.Data) < size {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, size),
			Format: s.format,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:size]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

// Frames reports the sample frame count from the COMM chunk.
func (s *source) Frames() int64 { return s.frames }

// SeekFrame reopens the stream and discards samples up to frame; the
// go-audio decoder has no random access into the SSND chunk.
func (s *source) SeekFrame(frame int64) error {
	if s.rs == nil {
		return audio.ErrNotSeekable
	}
	if _, err := s.rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	dec, err := open(s.rs)
	if err != nil {
		return err
	}
	s.dec = dec

	skip := frame * int64(s.channels)
	for skip > 0 {
		n, err := s.readInts(int(min(skip, 16384)))
		skip -= int64(n)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func open(rs io.ReadSeeker) (*aiff.Decoder, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrUnsupportedBitDepth
	}

	if dec.Format() == nil || dec.NumChans == 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return dec, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec, err := open(rs)
	if err != nil {
		return nil, err
	}

	format := dec.Format()

	return &source{
		rs:         rs,
		dec:        dec,
		format:     format,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		scale:      1 / float32(int64(1)<<(dec.BitDepth-1)),
		frames:     int64(dec.NumSampleFrames),
	}, nil
}
