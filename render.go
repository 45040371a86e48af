// SPDX-License-Identifier: EPL-2.0

package loudplayer

import (
	"fmt"
	"io"

	"github.com/ik5/loudplayer/audio"
	"github.com/ik5/loudplayer/formats/wav"
	"github.com/ik5/loudplayer/graph"
	"github.com/ik5/loudplayer/playlist"
	"github.com/ik5/loudplayer/utils"
)

// RenderPCM16 drains src and collects its interleaved samples as 16-bit
// PCM. It returns the samples and the source's rate and channel count.
func RenderPCM16(src audio.Source, bufferSize int) ([]int16, int, int, error) {
	rate, channels := src.SampleRate(), src.Channels()

	// Whole frames per read keep multi-channel stages happy.
	bufferSize -= bufferSize % channels
	if bufferSize <= 0 {
		bufferSize = channels
	}

	// Start with about two seconds and grow as needed.
	pcm16 := make([]int16, 0, rate*channels*2)
	buf := make([]float32, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if cap(pcm16)-len(pcm16) < n {
				grown := make([]int16, len(pcm16), len(pcm16)+max(n, cap(pcm16)))
				copy(grown, pcm16)
				pcm16 = grown
			}

			start := len(pcm16)
			pcm16 = pcm16[:start+n]
			utils.PutFloat32ToInt16(pcm16[start:], buf[:n])
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rate, channels, fmt.Errorf("%w", err)
		}
	}

	return pcm16, rate, channels, nil
}

// Render builds a chain for track on g, drains it and writes the result
// to w as a 16-bit WAV file. It returns the number of frames written.
func Render(g *graph.Graph, track playlist.Track, w io.Writer, bufferSize int) (int, error) {
	chain, err := g.Build(track)
	if err != nil {
		return 0, err
	}
	defer g.Teardown()

	pcm16, rate, channels, err := RenderPCM16(chain, bufferSize)
	if err != nil {
		return 0, fmt.Errorf("rendering %s: %w", track.Name(), err)
	}

	if err := wav.WriteWAV16(w, rate, channels, pcm16); err != nil {
		return 0, fmt.Errorf("writing %s: %w", track.Name(), err)
	}

	return len(pcm16) / channels, nil
}
