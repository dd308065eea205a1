// Package timing paces the render loop when vsync is off.
package timing

import "time"

// spinWindow is how long before the deadline Wait stops sleeping and spins
const spinWindow = 200 * time.Microsecond

// Limiter caps the frame rate with a hybrid sleep/spin wait
type Limiter struct {
	target time.Duration
	next   time.Time
}

// NewLimiter caps frames to fps per second. A non-positive fps disables the cap.
func NewLimiter(fps int) *Limiter {
	l := &Limiter{}
	l.SetLimit(fps)
	return l
}

// SetLimit changes the cap and restarts the schedule
func (l *Limiter) SetLimit(fps int) {
	l.next = time.Time{}
	if fps <= 0 {
		l.target = 0
		return
	}
	l.target = time.Second / time.Duration(fps)
}

// Target returns the frame duration being paced to, or 0 when uncapped
func (l *Limiter) Target() time.Duration {
	return l.target
}

// Wait blocks until the next frame is due
func (l *Limiter) Wait() {
	if l.target <= 0 {
		return
	}

	if l.next.IsZero() {
		l.next = time.Now().Add(l.target)
	} else {
		l.next = l.next.Add(l.target)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// resync after a hitch instead of rushing to catch up
	if late := -time.Until(l.next); late > l.target {
		l.next = time.Now().Add(l.target)
	}
}
