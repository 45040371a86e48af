// SPDX-License-Identifier: EPL-2.0

// Package wav decodes integer PCM WAV through github.com/go-audio/wav and
// writes the 16-bit files produced by the render command.
//
// The decoder accepts 16, 24 and 32-bit PCM at any rate and channel count:
//
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrUnsupportedEncoding) {
//	    // float or compressed data
//	}
//
// The source implements audio.Seeker. Frames is the data chunk length;
// SeekFrame rewinds the input, parses the header again and discards samples
// up to the target, because go-audio/wav offers no random access into the
// data chunk. Inputs that are not io.ReadSeeker are buffered in memory.
//
// WriteWAV16 emits a canonical 44-byte header followed by interleaved
// samples, whose count must be a multiple of the channel count:
//
//	err := wav.WriteWAV16(out, 48000, 2, pcm)
package wav
