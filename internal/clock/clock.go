// Package clock provides the time source used for snapshots, decisions and events.
package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Freeze pins Now to t and returns a function restoring the previous source.
func Freeze(t time.Time) (restore func()) {
	prev := NowFunc
	NowFunc = func() time.Time { return t }
	return func() { NowFunc = prev }
}
