package services

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/zivohub/internal/clock"
)

// Cooldown is a cancellable countdown that ticks once per period until it
// reaches zero. The underlying ticker is acquired by Start and released when
// the countdown completes or Stop is called, whichever comes first.
type Cooldown struct {
	clock  clock.Clock
	period time.Duration

	mu        sync.Mutex
	remaining int
	stop      chan struct{}
	done      chan struct{}
}

// NewCooldown returns an idle Cooldown.
func NewCooldown(clk clock.Clock, period time.Duration) *Cooldown {
	return &Cooldown{clock: clk, period: period}
}

// Start begins a countdown of the given number of ticks. It reports false
// without doing anything when a countdown is already running or ticks <= 0.
func (c *Cooldown) Start(ticks int) bool {
	if ticks <= 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return false
	}

	t := c.clock.NewTicker(c.period)
	stop := make(chan struct{})
	done := make(chan struct{})
	c.remaining = ticks
	c.stop = stop
	c.done = done

	go c.run(t, stop, done)
	return true
}

func (c *Cooldown) run(t clock.Ticker, stop, done chan struct{}) {
	defer close(done)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C():
			c.mu.Lock()
			if c.stop != stop {
				c.mu.Unlock()
				return
			}
			c.remaining--
			if c.remaining <= 0 {
				c.remaining = 0
				c.stop = nil
				c.done = nil
				c.mu.Unlock()
				return
			}
			c.mu.Unlock()
		}
	}
}

// Remaining returns the number of ticks left, 0 when idle.
func (c *Cooldown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Active reports whether a countdown is running.
func (c *Cooldown) Active() bool {
	return c.Remaining() > 0
}

// Stop cancels a running countdown and waits for its goroutine to exit.
// Safe to call at any time, including repeatedly.
func (c *Cooldown) Stop() {
	c.mu.Lock()
	if c.stop == nil {
		c.mu.Unlock()
		return
	}
	close(c.stop)
	done := c.done
	c.stop = nil
	c.done = nil
	c.remaining = 0
	c.mu.Unlock()

	<-done
}
