package services

import "time"

// DefaultDaysInAdvance is the generation horizon given to templates created
// without one.
const DefaultDaysInAdvance = 30

// Option configures a service.
type Option func(*options)

type options struct {
	now           func() time.Time
	batchMode     BatchMode
	daysInAdvance int
}

func newOptions(opts []Option) options {
	o := options{
		now:           time.Now,
		batchMode:     BatchModeAtomic,
		daysInAdvance: DefaultDaysInAdvance,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces the clock used for "today" and for processing timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithBatchMode selects how GenerateAllActive scopes its transactions.
// Unknown modes are ignored.
func WithBatchMode(mode BatchMode) Option {
	return func(o *options) {
		if mode.Valid() {
			o.batchMode = mode
		}
	}
}

// WithDefaultDaysInAdvance sets the horizon for templates created without one.
func WithDefaultDaysInAdvance(days int) Option {
	return func(o *options) {
		if days >= 0 {
			o.daysInAdvance = days
		}
	}
}
