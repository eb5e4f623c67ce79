package snake

import "time"

// Clock delivers tick signals to a Runner. It abstracts time.Ticker so
// tests and replay tools can drive a runner without real time passing.
type Clock interface {
	C() <-chan time.Time
	Stop()
}

// TickerClock adapts a time.Ticker to the Clock interface.
type TickerClock struct {
	ticker *time.Ticker
}

// NewTickerClock returns a clock firing every d.
func NewTickerClock(d time.Duration) *TickerClock {
	return &TickerClock{ticker: time.NewTicker(d)}
}

func (c *TickerClock) C() <-chan time.Time { return c.ticker.C }

func (c *TickerClock) Stop() { c.ticker.Stop() }

// ManualClock fires only when told to. Tests use it to step a runner
// deterministically.
type ManualClock struct {
	ch chan time.Time
}

// NewManualClock returns a clock that fires once per Fire call.
func NewManualClock() *ManualClock {
	return &ManualClock{ch: make(chan time.Time)}
}

// Fire delivers one tick signal. It blocks until the runner receives
// it, so a caller must not Fire after the runner has returned.
func (c *ManualClock) Fire() {
	c.ch <- time.Now()
}

func (c *ManualClock) C() <-chan time.Time { return c.ch }

func (c *ManualClock) Stop() {}
