// SPDX-License-Identifier: EPL-2.0

package loudplayer

import (
	"github.com/ik5/loudplayer/audio"
	"github.com/ik5/loudplayer/formats/aiff"
	"github.com/ik5/loudplayer/formats/mp3"
	"github.com/ik5/loudplayer/formats/vorbis"
	"github.com/ik5/loudplayer/formats/wav"
)

// NewRegistry returns a registry with every built-in decoder, keyed by
// file extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})

	return reg
}
