// Package rate keeps one token bucket per caller id and evicts the buckets
// of callers that went quiet.
package rate

import (
	"container/list"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IDLimiter is a rate limiter keyed by caller id, typically a remote IP.
type IDLimiter interface {
	Allow(id string) bool
	AllowN(id string, n int) bool
	Start()
	Stop()
}

type limiterPerID struct {
	evictList *list.List
	items     map[string]*list.Element
	t         timer
	s         settings

	lock     sync.Mutex
	stopC    chan struct{}
	stopOnce sync.Once
}

type limiterEntry struct {
	id         string
	limiter    *rate.Limiter
	lastActive time.Time
}

// NewLimiterPerID creates a limiter allowing c.Limit events per second with
// burst c.Burst for each id.
func NewLimiterPerID(c Config) IDLimiter {
	return &limiterPerID{
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		t:         realTimer{},
		s:         c.settings(),
		stopC:     make(chan struct{}),
	}
}

// Allow is shorthand for AllowN(id, 1).
func (lpi *limiterPerID) Allow(id string) bool {
	return lpi.AllowN(id, 1)
}

// AllowN reports whether n events may happen now for id.
func (lpi *limiterPerID) AllowN(id string, n int) bool {
	if _, ok := lpi.s.exempt[id]; ok {
		return true
	}
	lpi.lock.Lock()
	defer lpi.lock.Unlock()

	now := lpi.t.now()
	entry := lpi.getEntry(id)
	entry.lastActive = now
	return entry.limiter.AllowN(now, n)
}

func (lpi *limiterPerID) getEntry(id string) *limiterEntry {
	if elem, ok := lpi.items[id]; ok {
		lpi.evictList.MoveToFront(elem)
		return elem.Value.(*limiterEntry)
	}
	entry := &limiterEntry{
		id:      id,
		limiter: rate.NewLimiter(lpi.s.limit, lpi.s.burst),
	}
	lpi.items[id] = lpi.evictList.PushFront(entry)
	return entry
}

// Start runs the eviction loop until Stop is called.
func (lpi *limiterPerID) Start() {
	go lpi.maintainLoop()
}

// Stop ends the eviction loop.
func (lpi *limiterPerID) Stop() {
	lpi.stopOnce.Do(func() {
		close(lpi.stopC)
	})
}

func (lpi *limiterPerID) maintainLoop() {
	ticker := lpi.t.newTicker(lpi.s.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lpi.maintain()
		case <-lpi.stopC:
			return
		}
	}
}

// maintain evicts the least recently active ids while there are more than
// maxClients of them and the oldest has been idle longer than idleTimeout.
func (lpi *limiterPerID) maintain() {
	lpi.lock.Lock()
	defer lpi.lock.Unlock()

	for lpi.evictList.Len() > lpi.s.maxClients {
		elem := lpi.evictList.Back()
		entry := elem.Value.(*limiterEntry)
		if lpi.t.since(entry.lastActive) <= lpi.s.idleTimeout {
			return
		}
		lpi.evictList.Remove(elem)
		delete(lpi.items, entry.id)
	}
}

type timer interface {
	now() time.Time
	since(time.Time) time.Duration
	newTicker(time.Duration) *time.Ticker
}

type realTimer struct{}

func (realTimer) now() time.Time {
	return time.Now()
}

func (realTimer) since(t time.Time) time.Duration {
	return time.Since(t)
}

func (realTimer) newTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}
