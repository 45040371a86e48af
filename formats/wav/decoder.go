// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/loudplayer/audio"
)

// pcmReader is the subset of wav.Decoder the source needs; tests fake it.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	rs         io.ReadSeeker
	dec        pcmReader
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
func (s *source) BufSize() int    { return 4096 }

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

func (s *source) Frames() int64 { return s.frames }

// SeekFrame re-parses the header from the start of the stream and skips
// forward to frame. go-audio/wav tracks its own chunk position, so moving
// the reader underneath it would desynchronise the decoder.
func (s *source) SeekFrame(frame int64) error {
	if s.rs == nil {
		return audio.ErrNotSeekable
	}
	if _, err := s.rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	dec, _, err := openPCM(s.rs)
	if err != nil {
		return err
	}
	s.dec = dec

	skip := frame * int64(s.channels)
	for skip > 0 {
		chunk := int(min(skip, 16384))
		n, err := s.readInts(chunk)
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

// openPCM validates the header and leaves the decoder positioned at the
// first sample of the data chunk.
func openPCM(rs io.ReadSeeker) (*wav.Decoder, int64, error) {
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, 0, ErrNotWavFile
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, 0, fmt.Errorf("%w", err)
	}
	if dec.WavAudioFormat != 1 {
		return nil, 0, ErrUnsupportedEncoding
	}

	switch dec.BitDepth {
	case 16, 24, 32:
	default:
		return nil, 0, ErrUnsupportedBitDepth
	}

	blockAlign := int64(dec.NumChans) * int64(dec.BitDepth/8)
	if blockAlign == 0 {
		return nil, 0, ErrNotWavFile
	}

	return dec, int64(dec.PCMSize) / blockAlign, nil
}

type Decoder struct{}

// Decode needs random access; non-seekable readers are buffered in memory.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec, frames, err := openPCM(rs)
	if err != nil {
		return nil, err
	}

	return &source{
		rs:         rs,
		dec:        dec,
		format:     dec.Format(),
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		scale:      1 / float32(int64(1)<<(dec.BitDepth-1)),
		frames:     frames,
	}, nil
}
