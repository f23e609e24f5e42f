package dirwatch

import (
	"time"

	"github.com/zoobzio/clockz"
)

const (
	// DefaultSettleDelay is the pause between waking on a notification and
	// draining it, giving writers time to finish updating content and
	// timestamps. It narrows but does not close races with slow writers.
	DefaultSettleDelay = 100 * time.Millisecond

	// DefaultStopTimeout bounds how long Stop waits for the event loop.
	DefaultStopTimeout = 60 * time.Second

	// DefaultErrorHistorySize is the number of recent errors retained.
	DefaultErrorHistorySize = 16
)

// config holds configuration options for a Watcher.
type config struct {
	settleDelay     time.Duration
	stopTimeout     time.Duration
	dispatchTimeout time.Duration
	historySize     int
	clock           clockz.Clock
	source          Source
	metrics         MetricsProvider
	errorHandler    func(error)
}

func defaultConfig() *config {
	return &config{
		settleDelay: DefaultSettleDelay,
		stopTimeout: DefaultStopTimeout,
		historySize: DefaultErrorHistorySize,
		clock:       clockz.RealClock,
	}
}

// Option configures a Watcher.
type Option func(*config)

// WithSettleDelay sets the pause between waking on a notification and
// draining it. Zero disables the pause.
func WithSettleDelay(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.settleDelay = d
		}
	}
}

// WithStopTimeout sets how long Stop waits for the event loop before
// tearing it down.
func WithStopTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.stopTimeout = d
		}
	}
}

// WithDispatchTimeout bounds each handler invocation. A handler still
// running after d is abandoned (it keeps running on its own goroutine) and
// the event loop moves on. Zero, the default, runs handlers inline.
func WithDispatchTimeout(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.dispatchTimeout = d
		}
	}
}

// WithClock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic settle and delay testing.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSource replaces the default fsnotify source. The Watcher takes
// ownership and closes it on Stop.
func WithSource(source Source) Option {
	return func(c *config) {
		c.source = source
	}
}

// WithMetrics sets a metrics provider for observability integration.
func WithMetrics(provider MetricsProvider) Option {
	return func(c *config) {
		c.metrics = provider
	}
}

// WithErrorHandler sets a callback for non-fatal errors: unresolvable
// listener targets, handler panics and timeouts, and source errors. It may
// be called from the event loop or the source goroutine.
func WithErrorHandler(fn func(error)) Option {
	return func(c *config) {
		c.errorHandler = fn
	}
}

// WithErrorHistorySize sets the number of recent errors returned by
// ErrorHistory. Zero disables the history; LastError still works.
func WithErrorHistorySize(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.historySize = n
		}
	}
}
