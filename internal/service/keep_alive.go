package service

import "sync/atomic"

// NopKeepAlive does nothing. Servers and CLIs have no host sleep to
// prevent.
type NopKeepAlive struct{}

func (NopKeepAlive) Acquire() func() { return func() {} }

// CountingKeepAlive counts outstanding holds.
type CountingKeepAlive struct {
	held atomic.Int64
}

func (k *CountingKeepAlive) Acquire() func() {
	k.held.Add(1)
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			k.held.Add(-1)
		}
	}
}

// Held returns the number of holds not yet released.
func (k *CountingKeepAlive) Held() int64 {
	return k.held.Load()
}
