// SPDX-License-Identifier: EPL-2.0

// Package effects holds the processing stages of the playback chain.
//
// Every stage is an audio.Source decorator, so a chain is built by
// wrapping one stage around the next:
//
//	g := effects.NewGain(src, 1.5)
//	bass := effects.NewBiquad(g, effects.LowShelf, 120, 0, 0)
//	mid := effects.NewBiquad(bass, effects.Peaking, 1000, 1, 0)
//	treble := effects.NewBiquad(mid, effects.HighShelf, 6000, 0, 0)
//	shaper := effects.NewWaveShaper(treble, effects.SoftClipCurve(true, 1024, 3), effects.Oversample4x)
//	an, _ := effects.NewAnalyser(shaper, 2048)
//
// # Live parameters
//
// The output device pulls samples on its own goroutine. Setters such as
// Gain.SetGain, Biquad.SetGain and WaveShaper.SetCurve publish the new
// value atomically and take effect on the next ReadSamples call; filter
// state is kept across coefficient changes.
//
// # Filters
//
// Biquad coefficients follow the RBJ audio EQ cookbook with the Web Audio
// conventions: shelves use a slope of 1 (Q = 1/sqrt 2) and gains are in dB.
//
// # Waveshaping
//
// A Curve maps [-1, 1] to an output amplitude. Inputs between table points
// are interpolated linearly and inputs outside [-1, 1] take the edge value.
// Oversampling runs the curve at 2x or 4x the stream rate and low-passes
// before decimating, which keeps aliasing from the clipper down.
//
// # Analysis
//
// Analyser keeps the last FFTSize mono samples that passed through it and
// answers time-domain and frequency-domain queries from any goroutine.
package effects
