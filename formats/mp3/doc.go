// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III through github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so the source reports two channels
// whatever the file holds; the player's ChannelMixer folds it to the
// device layout.
//
//	src, err := mp3.Decoder{}.Decode(f)
//	out, err := audio.NewChannelMixer(audio.NewResampler(src, 48000), 2)
//
// When the input is an io.Seeker, go-mp3 measures the stream and the source
// implements audio.Seeker by seeking the decoded byte offset. Otherwise
// Frames reports -1 and SeekFrame returns audio.ErrNotSeekable, which the
// player shows as an unknown duration.
package mp3
