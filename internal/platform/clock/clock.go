package clock

import (
	"sync"
	"time"
)

// Clock is the only source of "now" for services and coaches.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC. Stores persist UTC timestamps.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Manual is a Clock that moves only when told to. With a step set, every
// read returns the current instant and then moves on by step, which gives
// each stored row a distinct timestamp. It is safe for concurrent use, so a
// coach hand-off goroutine may read it while a test advances it.
type Manual struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start.UTC()}
}

// NewStepping returns a Manual clock that advances by step after every read.
func NewStepping(start time.Time, step time.Duration) *Manual {
	return &Manual{now: start.UTC(), step: step}
}

func (c *Manual) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *Manual) Set(t time.Time) {
	c.mu.Lock()
	c.now = t.UTC()
	c.mu.Unlock()
}
