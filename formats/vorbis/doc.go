// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
//
// Samples are interleaved float32 as produced by the Vorbis decoder, at the
// stream's own rate and channel count:
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	mono, err := audio.NewChannelMixer(src, 1)
//
// ReadSamples only fills whole frames; a trailing partial frame in the
// destination is left untouched.
//
// oggvorbis measures the stream only when the input is an io.Seeker. In
// that case Frames reports the length and SeekFrame uses SetPosition;
// otherwise Frames is -1 and the player treats the duration as unknown.
//
// The player registers the decoder for .ogg and .oga.
package vorbis
