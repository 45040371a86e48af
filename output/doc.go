// SPDX-License-Identifier: EPL-2.0

// Package output plays audio.Source streams on the system audio device
// using github.com/ebitengine/oto/v3.
//
// The device owns one oto context for the lifetime of the program. Each
// chain gets its own Player, which pulls samples through a Reader on the
// oto goroutine and reports the end of the stream through a callback.
//
// The context starts suspended, like a browser audio context before the
// first user gesture; Resume is idempotent.
package output
