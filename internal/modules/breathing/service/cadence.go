package service

import "time"

// Cadence calls tick once per interval on a single goroutine while armed.
// Disarm returns only after that goroutine has exited, so no tick can run
// after it.
type Cadence struct {
	interval time.Duration
	tick     func()
	stop     chan struct{}
	done     chan struct{}
}

func NewCadence(interval time.Duration, tick func()) *Cadence {
	return &Cadence{interval: interval, tick: tick}
}

func (c *Cadence) Armed() bool {
	return c.stop != nil
}

func (c *Cadence) Arm() {
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.loop(c.stop, c.done)
}

func (c *Cadence) Disarm() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	<-c.done
	c.stop = nil
	c.done = nil
}

func (c *Cadence) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			c.tick()
		}
	}
}
