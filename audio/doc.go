// SPDX-License-Identifier: EPL-2.0

// Package audio holds the pull-based stages the player chain is built from.
//
// Every stage is a Source: it reports its rate and channel count and fills
// an interleaved float32 buffer in [-1, 1] on each ReadSamples call,
// returning io.EOF once drained. Stages wrap the stage before them, so a
// decoder, a Cursor, a Resampler and a ChannelMixer compose into a single
// Source that the output device pulls from:
//
//	cur := audio.NewCursor(dec)
//	rs := audio.NewResampler(cur, 48000)
//	out, err := audio.NewChannelMixer(rs, 2)
//
// Decoders that know their length also implement Seeker. The Cursor counts
// frames as they pass through it, which gives the position and duration
// shown by the player, and forwards SeekFrame to the decoder after
// clamping it to the stream. A Resampler above a moved source must be
// Reset so that frames buffered for interpolation are discarded.
//
// ChannelMixer averages when folding down to mono and repeats source
// channels cyclically when the output has more of them.
//
// The Registry maps file extensions to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, err := reg.Lookup("Track01.WAV")
//
// Keys are case-insensitive and a leading dot is ignored.
package audio
