// Package platform abstracts the host services the interpreter depends on,
// so the runtime can be exercised in tests without touching the real clock.
package platform

import "time"

// Clock provides the suspension primitive behind the SLEEP statement.
type Clock interface {
	// Sleep blocks the calling goroutine for d.
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// System returns the real host clock.
func System() Clock {
	return systemClock{}
}
