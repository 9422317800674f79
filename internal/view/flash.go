package view

import (
	"sync"
	"time"
)

// DefaultFlashDisplay matches the per-item "added to cart" feedback
// window.
const DefaultFlashDisplay = 1500 * time.Millisecond

// Flash is a display-then-auto-revert notice, such as the "added to
// cart" confirmation on a product card. It holds no timer; expiry is
// evaluated on read.
type Flash struct {
	mu      sync.Mutex
	message string
	until   time.Time
	now     func() time.Time
}

// NewFlash creates an empty flash. now may be nil for the wall clock.
func NewFlash(now func() time.Time) *Flash {
	if now == nil {
		now = time.Now
	}
	return &Flash{now: now}
}

// Show displays a message for the given duration.
func (f *Flash) Show(message string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = message
	f.until = f.now().Add(d)
}

// Active returns the message while the display window is open.
func (f *Flash) Active() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.message == "" || f.now().After(f.until) {
		return "", false
	}
	return f.message, true
}
