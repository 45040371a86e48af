// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files through github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 and 32 bits is accepted at any rate and channel
// count; AIFF-C compression is rejected. Samples come out as interleaved
// float32 scaled by the file's bit depth.
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF stream
//	}
//
// The source implements audio.Seeker. Frames is taken from the COMM chunk,
// and SeekFrame rewinds the input and decodes forward to the target frame,
// because the go-audio decoder keeps its own read offset. Inputs that are
// not io.ReadSeeker are buffered in memory by Decode.
//
// The player registers the decoder for .aif and .aiff.
package aiff
