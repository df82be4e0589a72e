// Package mockgen synthesizes internally consistent records of the MNEE token
// network: identifiers, transactions, blocks, addresses, holders and the
// aggregates and time series built on top of them.
//
// A Generator owns its random source and is not safe for concurrent use.
// Seed it through WithSeed or WithRand to get reproducible output.
package mockgen

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mnee-network/explorer/core/types"
	"github.com/mnee-network/explorer/internal/utils"
)

// Generation constants.
const (
	BaseHeight  uint64  = 800000
	TotalSupply float64 = 1e9

	txStep          = 60 * time.Second
	pendingTail     = 5
	maxConfirmation = 100
	maxTimeBetween  = 120.0 // seconds

	blockInterval    = 10 * time.Minute
	minBlockTxs      = 5
	maxBlockTxs      = 15
	uniqueAddrFactor = 0.7

	addrHistoryStep   = time.Hour
	minAddrHistory    = 10
	maxAddrHistory    = 109
	maxInitialBalance = 100000.0
	maxAddrStepAmount = 1000.0

	day = 24 * time.Hour
)

// Generator produces mock records.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
	log zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithSeed seeds a fresh random source.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithClock sets the function used as "now".
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator. Without options it uses a time seeded random
// source and the wall clock.
func New(opts ...Option) *Generator {
	g := &Generator{
		now: time.Now,
		log: utils.Logger().With().Str("module", "mockgen").Logger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Now returns the generator clock in milliseconds since epoch.
func (g *Generator) Now() int64 {
	return types.TimeToMillis(g.now())
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// intRange returns an int in [lo, hi].
func (g *Generator) intRange(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func checkCount(kind string, count int) error {
	if count < 0 {
		return errors.Wrapf(types.ErrInvalidArgument, "%s count must not be negative: %d", kind, count)
	}
	return nil
}

// checkHeights also rejects counts whose heights BaseHeight-i would drop
// below zero.
func checkHeights(kind string, count int) error {
	if err := checkCount(kind, count); err != nil {
		return err
	}
	if uint64(count) > BaseHeight+1 {
		return errors.Wrapf(types.ErrInvalidArgument, "%s count %d exceeds the %d heights up to %d",
			kind, count, BaseHeight+1, BaseHeight)
	}
	return nil
}
