// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"io"
	"math"
	"sync"

	"github.com/ik5/loudplayer/audio"
)

// Reader turns a Source into the float32 little-endian byte stream oto
// consumes. onEnd runs once, on the reading goroutine, when the source
// has nothing more to give, with nil at a clean EOF.
type Reader struct {
	src      audio.Source
	channels int
	buf      []float32
	onEnd    func(error)
	once     sync.Once
}

func NewReader(src audio.Source, onEnd func(error)) *Reader {
	return &Reader{
		src:      src,
		channels: src.Channels(),
		onEnd:    onEnd,
	}
}

func (r *Reader) Read(p []byte) (int, error) {
	frameBytes := 4 * r.channels
	samples := len(p) / frameBytes * r.channels
	if samples == 0 {
		return 0, nil
	}

	if cap(r.buf) < samples {
		r.buf = make([]float32, samples)
	}
	buf := r.buf[:samples]

	n, err := r.src.ReadSamples(buf)
	for i, v := range buf[:n] {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}

	// Deliver the tail first; the end is reported on the following read.
	if n > 0 {
		return n * 4, nil
	}
	if err == nil {
		return 0, nil
	}

	r.finish(err)

	return 0, io.EOF
}

func (r *Reader) finish(err error) {
	r.once.Do(func() {
		if err == io.EOF {
			err = nil
		}
		if r.onEnd != nil {
			r.onEnd(err)
		}
	})
}
