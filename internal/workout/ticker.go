package workout

import "time"

// Ticker is the per-second source that drives the rest countdown.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type clockTicker struct {
	t *time.Ticker
}

func newClockTicker(d time.Duration) Ticker {
	return clockTicker{t: time.NewTicker(d)}
}

func (c clockTicker) C() <-chan time.Time { return c.t.C }
func (c clockTicker) Stop()               { c.t.Stop() }
