// SPDX-License-Identifier: EPL-2.0

// Package loudplayer ties the decoders, the loudness chain and the output
// together for the command line player.
//
// # Supported Formats
//
// NewRegistry maps file extensions to decoders:
//   - WAV (PCM 16/24/32-bit) via formats/wav
//   - AIFF (PCM 8/16/24/32-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// # Processing Chain
//
// graph.Graph builds one chain per track:
//
//	decoder -> resample -> channel mix -> gain -> low shelf 120 Hz
//	        -> peaking 1 kHz -> high shelf 6 kHz -> soft clip -> analyser
//
// The chain is an audio.Source; the output package plays it through oto.
//
// # Offline Rendering
//
// Render runs a track through the same chain and writes 16-bit WAV:
//
//	g := graph.New(loudplayer.NewRegistry(), graph.DefaultConfig(), graph.DefaultSettings())
//	out, _ := os.Create("loud.wav")
//	defer out.Close()
//	_, err := loudplayer.Render(g, playlist.FileTrack{Path: "in.mp3"}, out, 4096)
//
// # Plain Playback
//
// Open decodes a track and adapts it to the output format without any
// processing; player.Simple uses it to play a single asset.
//
// See the individual subpackages for more detailed documentation.
package loudplayer
