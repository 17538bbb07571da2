package clock

import (
	"sync"
	"time"
)

// MockClock is a manually driven Clock for tests.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
	tickers     []*MockTicker
}

// Ensure MockClock implements Clock
var _ Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time.
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentTime
}

// NewTicker registers a ticker that only fires when Tick is called.
func (c *MockClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &MockTicker{period: d, ch: make(chan time.Time), stopCh: make(chan struct{})}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance moves the clock forward by d without firing tickers.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Tick advances the clock by one period of the most recent live ticker and
// delivers the tick to it. The call blocks until the tick is received, so it
// must only be used while something is consuming the ticker. It reports
// false when no live ticker exists.
func (c *MockClock) Tick() bool {
	c.mu.Lock()
	var t *MockTicker
	for i := len(c.tickers) - 1; i >= 0; i-- {
		if !c.tickers[i].isStopped() {
			t = c.tickers[i]
			break
		}
	}
	if t == nil {
		c.mu.Unlock()
		return false
	}
	c.CurrentTime = c.CurrentTime.Add(t.period)
	now := c.CurrentTime
	c.mu.Unlock()

	return t.fire(now)
}

// Tickers returns the number of tickers that have not been stopped.
func (c *MockClock) Tickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if !t.isStopped() {
			n++
		}
	}
	return n
}

// MockTicker is the Ticker handed out by MockClock.
type MockTicker struct {
	mu      sync.Mutex
	period  time.Duration
	ch      chan time.Time
	stopped bool
	stopCh  chan struct{}
}

func (t *MockTicker) C() <-chan time.Time { return t.ch }

func (t *MockTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.stopCh)
}

func (t *MockTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *MockTicker) fire(now time.Time) bool {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return false
	}
	stop := t.stopCh
	t.mu.Unlock()

	select {
	case t.ch <- now:
		return true
	case <-stop:
		return false
	}
}
