// SPDX-License-Identifier: EPL-2.0

package loudplayer

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/loudplayer/audio"
	"github.com/ik5/loudplayer/playlist"
)

// trackSource owns the track input so closing the stream releases it.
type trackSource struct {
	audio.Source
	input io.Closer
}

func (s *trackSource) Close() error {
	return errors.Join(s.Source.Close(), s.input.Close())
}

// Open decodes track and converts it to rate and channels. Closing the
// returned source also closes the track input.
func Open(reg *audio.Registry, track playlist.Track, rate, channels int) (audio.Source, error) {
	dec, err := reg.Lookup(track.Name())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", track.Name(), err)
	}

	input, err := track.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", track.Name(), err)
	}

	src, err := dec.Decode(input)
	if err != nil {
		_ = input.Close()
		return nil, fmt.Errorf("decoding %s: %w", track.Name(), err)
	}

	if src.SampleRate() != rate {
		src = audio.NewResampler(src, rate)
	}

	mixed, err := audio.NewChannelMixer(src, channels)
	if err != nil {
		_ = src.Close()
		_ = input.Close()
		return nil, fmt.Errorf("%s: %w", track.Name(), err)
	}

	return &trackSource{Source: mixed, input: input}, nil
}
