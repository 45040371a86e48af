package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrUnsupportedEncoding = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedBitDepth = errors.New("only 16, 24 and 32 bit WAV is supported")
	ErrInvalidChannels     = errors.New("channel count must be positive")
	ErrPartialFrame        = errors.New("sample count is not a multiple of the channel count")
)
