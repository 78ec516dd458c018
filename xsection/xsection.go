// Package xsection implements the sole mutual-exclusion primitive used
// throughout this firmware: a scoped critical section modeled on the AVR
// convention of disabling interrupts for the shortest possible window and
// restoring the prior enable state on every exit path.
//
// On real AVR firmware this is ATOMIC_BLOCK(ATOMIC_RESTORESTATE). On this
// Go port, the foreground loop and each simulated ISR are either plain
// synchronous calls (tests) or real goroutines (board), so the guard is
// backed by a sync.Mutex rather than a global interrupt-enable flag. The
// contract callers must honor is unchanged: critical sections must be
// bounded and must never call a blocking function.
package xsection

import "sync"

// Guard is a scoped critical section. The zero value is ready to use.
type Guard struct {
	mu sync.Mutex
}

// Enter acquires the guard and returns a release function that must be
// deferred to restore access on every exit path, including a panic.
func (g *Guard) Enter() (release func()) {
	g.mu.Lock()
	return g.mu.Unlock
}

// Do runs fn with the guard held, guaranteeing release even if fn panics.
// Prefer this over Enter/defer when fn is a single expression.
func (g *Guard) Do(fn func()) {
	release := g.Enter()
	defer release()
	fn()
}
