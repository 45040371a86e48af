// SPDX-License-Identifier: EPL-2.0

// Package graph builds the fixed playback chain for a track:
//
//	decoder → resampler → channel mixer → gain → low shelf 120 Hz →
//	peaking 1 kHz (Q 1) → high shelf 6 kHz → waveshaper → analyser
//
// A Graph remembers the user's settings and applies them to each chain it
// builds; building a new chain tears the previous one down first. Setters
// change the live chain in place without a rebuild.
package graph
