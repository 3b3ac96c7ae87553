package quiz

import "fmt"

// Countdown is the exam clock. It counts whole seconds and is advanced only
// by explicit ticks, so the caller decides where ticks come from.
type Countdown struct {
	remaining int
	active    bool
}

// Start arms the countdown with the given number of seconds.
func (c *Countdown) Start(seconds int) {
	c.remaining = max(seconds, 0)
	c.active = c.remaining > 0
}

// Stop deactivates the countdown. Further ticks are ignored.
func (c *Countdown) Stop() {
	c.active = false
}

// Tick consumes one second. It returns true exactly once, on the tick that
// reaches zero; the countdown is inactive afterwards.
func (c *Countdown) Tick() bool {
	if !c.active {
		return false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.active = false
		return true
	}
	return false
}

// Active reports whether ticks are still being counted.
func (c *Countdown) Active() bool { return c.active }

// Remaining returns the number of seconds left.
func (c *Countdown) Remaining() int { return c.remaining }

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
