// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/loudplayer/utils"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation. Channel count is preserved. When downsampling, incoming
// frames pass through a one-pole low-pass below the target Nyquist.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	// hist[0]=t-1, hist[1]=t, hist[2]=t+1, hist[3]=t+2
	hist   [4][]float32
	primed bool
	frac   float64
	tail   int // trailing frames in hist that are padding past EOF

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	lp      []float32
	alpha   float32
	settled bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		in:       make([]float32, channels*1024),
		lp:       make([]float32, channels),
	}

	if step > 1 {
		fc := 0.45 * float64(dstRate)
		r.alpha = float32(1 - math.Exp(-2*math.Pi*fc/float64(src.SampleRate())))
	}

	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Reset drops buffered frames so the next read starts from wherever the
// underlying source is now positioned. Call it after seeking the source.
func (r *Resampler) Reset() {
	r.primed = false
	r.frac = 0
	r.tail = 0
	r.inPos, r.inLen = 0, 0
	r.srcEOF = false
	r.settled = false
}

// readFrame copies the next source frame into dst. It reports false once
// the source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	for r.inPos >= r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		n -= n % r.channels
		r.inPos, r.inLen = 0, n

		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		} else if n == 0 {
			return false, io.ErrNoProgress
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.alpha > 0 {
		if !r.settled {
			// start the filter settled on the first frame
			copy(r.lp, dst[:r.channels])
			r.settled = true
		}
		for c := range r.channels {
			r.lp[c] += r.alpha * (dst[c] - r.lp[c])
			dst[c] = r.lp[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	ok, err := r.readFrame(r.hist[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.hist[0], r.hist[1])

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.hist[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.hist[i], r.hist[i-1])
			r.tail++
		}
	}

	r.primed = true
	return nil
}

func (r *Resampler) advance() error {
	first := r.hist[0]
	r.hist[0], r.hist[1], r.hist[2] = r.hist[1], r.hist[2], r.hist[3]
	r.hist[3] = first

	if r.tail > 0 {
		copy(r.hist[3], r.hist[2])
		r.tail++
		return nil
	}

	ok, err := r.readFrame(r.hist[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[3], r.hist[2])
		r.tail++
	}

	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if r.tail >= 3 {
			return written * r.channels, io.EOF
		}

		x := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.frac += r.step
	}

	return written * r.channels, nil
}
