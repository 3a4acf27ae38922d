// Package leaktest holds goroutine accounting helpers shared by integration tests.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// GoroutineChecker records the goroutine count at construction and compares it on Check.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker snapshots the current goroutine count.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	settle(10 * time.Millisecond)
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check fails the test when more than tolerance goroutines outlived the snapshot.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(time.Second)
	var after int
	for {
		settle(25 * time.Millisecond)
		after = runtime.NumGoroutine()
		if after-g.before <= tolerance || time.Now().After(deadline) {
			break
		}
	}

	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

func settle(d time.Duration) {
	runtime.Gosched()
	runtime.GC()
	time.Sleep(d)
}
