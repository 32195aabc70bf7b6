package session

import (
	"time"

	"go.uber.org/zap"
)

const DefaultPollInterval = time.Second

// Ticker is the part of time.Ticker the poll loop needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFactory func(d time.Duration) Ticker

type stdTicker struct {
	t *time.Ticker
}

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

func newStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

type Option func(*Controller)

func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTickerFactory replaces time.NewTicker, mainly for tests.
func WithTickerFactory(f TickerFactory) Option {
	return func(c *Controller) {
		if f != nil {
			c.newTicker = f
		}
	}
}

// WithOnSubmitted registers a hook called once the service accepted a job.
func WithOnSubmitted(fn func(Outcome)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.onSubmitted = append(c.onSubmitted, fn)
		}
	}
}

// WithOnTerminal registers a hook called when a job reaches Completed or Failed.
func WithOnTerminal(fn func(Outcome)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.onTerminal = append(c.onTerminal, fn)
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}
