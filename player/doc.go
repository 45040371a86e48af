// SPDX-License-Identifier: EPL-2.0

// Package player drives playback: it owns the session (playlist, live
// chain, output player) and maps user controls onto it.
//
// A Controller is not safe for concurrent use. It is meant to be driven
// from one goroutine, such as a terminal UI update loop; the audio
// goroutine reports back only through the Events channel, and the owner
// passes those events to HandleEvent on the same goroutine. The end of a
// track is reported when the chain runs dry, while the device still holds
// buffered audio; the owner calls Poll on each clock tick and the next
// track is loaded only once the device has stopped on its own.
//
// Starting playback is fire-and-forget: if the output cannot be resumed
// or started, the failure is logged and the call still returns normally.
package player
