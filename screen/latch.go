package screen

import "sync/atomic"

// Latch grants exclusive use of the terminal to one dialog at a time.
// A dialog that finds it held gives up instead of waiting.
type Latch struct {
	held atomic.Bool
}

// TryLock claims the latch; false when it is already held
func (l *Latch) TryLock() bool {
	return l.held.CompareAndSwap(false, true)
}

// Unlock releases the latch
func (l *Latch) Unlock() {
	l.held.Store(false)
}

// Held reports whether the latch is currently claimed
func (l *Latch) Held() bool {
	return l.held.Load()
}

// Exclusive is the process-wide terminal latch used by the ANSI and Tcell
// surfaces. Two surfaces on the same TTY therefore exclude each other.
var Exclusive Latch

// Acquire claims s and returns a release function that is safe to call
// more than once.
func Acquire(s Surface) (release func(), ok bool) {
	if !s.TryLock() {
		return nil, false
	}
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			s.Unlock()
		}
	}, true
}
