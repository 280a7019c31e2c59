// Package clock is the time source of network latency and cache expiry.
package clock

import "time"

// NowFunc returns current time; tests replace it with Freeze.
var NowFunc = time.Now

// Now returns NowFunc()
func Now() time.Time { return NowFunc() }

// Since returns time elapsed from t
func Since(t time.Time) time.Duration { return Now().Sub(t) }

// Freeze pins Now to at and returns a function restoring the previous source
func Freeze(at *time.Time) (restore func()) {
	previous := NowFunc
	NowFunc = func() time.Time { return *at }
	return func() { NowFunc = previous }
}
