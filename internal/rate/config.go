package rate

import (
	"time"

	"golang.org/x/time/rate"
)

// Defaults for the zero fields of Config.
const (
	DefaultMaxClients  = 100
	DefaultSweep       = time.Minute
	DefaultIdleTimeout = 3 * time.Minute
)

// Config tunes an IDLimiter. Zero or negative tuning fields take the defaults.
type Config struct {
	// Limit and Burst size the token bucket of every id.
	Limit rate.Limit
	Burst int

	// MaxClients is the number of buckets kept before idle ones are evicted.
	MaxClients int
	// Sweep is the eviction interval.
	Sweep time.Duration
	// IdleTimeout is how long a bucket stays unused before it can be evicted.
	IdleTimeout time.Duration

	// Exempt ids are never limited, e.g. the address of a local scraper.
	Exempt []string
}

type settings struct {
	limit       rate.Limit
	burst       int
	maxClients  int
	sweep       time.Duration
	idleTimeout time.Duration
	exempt      map[string]struct{}
}

func (c Config) settings() settings {
	s := settings{
		limit:       c.Limit,
		burst:       c.Burst,
		maxClients:  DefaultMaxClients,
		sweep:       DefaultSweep,
		idleTimeout: DefaultIdleTimeout,
		exempt:      make(map[string]struct{}, len(c.Exempt)),
	}
	if c.MaxClients > 0 {
		s.maxClients = c.MaxClients
	}
	if c.Sweep > 0 {
		s.sweep = c.Sweep
	}
	if c.IdleTimeout > 0 {
		s.idleTimeout = c.IdleTimeout
	}
	for _, id := range c.Exempt {
		s.exempt[id] = struct{}{}
	}
	return s
}
