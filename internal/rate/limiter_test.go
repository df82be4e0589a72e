package rate

import (
	"container/list"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

var (
	id1 = "id1"
	id2 = "id2"
)

func TestLimiterPerID_AllowN(t *testing.T) {
	tests := []struct {
		steps []testStep
	}{
		{
			steps: []testStep{
				{id1, 1, true},
				{id1, 1, true},
				{id1, 1, false},
			},
		},
		{
			steps: []testStep{
				{id1, 1, true},
				{id2, 1, true},
				{id1, 1, true},
				{id1, 1, false},
				{id2, 1, true},
			},
		},
		{
			steps: []testStep{
				{id1, 2, true},
				{id1, 1, false},
			},
		},
		{
			steps: []testStep{
				{id1, 3, false},
				{id1, 3, false},
			},
		},
	}
	for i, test := range tests {
		lpi := newTestLimiter()
		steps := test.steps
		for j, step := range steps {
			res := lpi.AllowN(step.id, step.n)
			if res != step.exp {
				t.Errorf("Test %v/%v unexpected %v/%v", i, j, res, step.exp)
			}
			lpi.t.(*testTimer).tick()
		}
	}
}

func TestLimiterPerID_maintain(t *testing.T) {
	lpi := newTestLimiter()
	lpi.s.maxClients = 0
	lpi.AllowN(id1, 2)
	lpi.t.(*testTimer).tick()
	lpi.AllowN(id2, 2)
	lpi.t.(*testTimer).tick()

	lpi.maintain()
	if lpi.evictList.Len() != 1 || len(lpi.items) != 1 {
		t.Errorf("unexpected number. Expect 1")
	}
	for id := range lpi.items {
		if id != id2 {
			t.Errorf("unexpected id. Expect id2")
		}
	}
	lpi.t.(*testTimer).tick()
	lpi.maintain()
	if lpi.evictList.Len() != 0 || len(lpi.items) != 0 {
		t.Errorf("unexpected number. Expect 0")
	}
}

func TestLimiterPerID_maintain_largeCap(t *testing.T) {
	lpi := newTestLimiter()
	lpi.s.maxClients = 10
	lpi.AllowN(id1, 2)
	lpi.t.(*testTimer).tick()
	lpi.AllowN(id2, 2)
	lpi.t.(*testTimer).tick()
	lpi.maintain()

	if lpi.evictList.Len() != 2 || len(lpi.items) != 2 {
		t.Errorf("unexpected number")
	}
}

func TestLimiterPerID_maintain_largeMinDur(t *testing.T) {
	lpi := newTestLimiter()
	lpi.s.idleTimeout = 5 * time.Second
	lpi.AllowN(id1, 2)
	lpi.t.(*testTimer).tick()
	lpi.AllowN(id2, 2)
	lpi.t.(*testTimer).tick()
	lpi.maintain()

	if lpi.evictList.Len() != 2 || len(lpi.items) != 2 {
		t.Errorf("unexpected number")
	}
}

func TestLimiterPerID_exempt(t *testing.T) {
	lpi := NewLimiterPerID(Config{Limit: rate.Every(time.Hour), Burst: 1, Exempt: []string{"127.0.0.1"}})
	for i := 0; i != 10; i++ {
		if !lpi.Allow("127.0.0.1") {
			t.Fatalf("Test %v: exempt id rejected", i)
		}
	}
	if !lpi.Allow("10.0.0.1") {
		t.Errorf("first request should pass")
	}
	if lpi.Allow("10.0.0.1") {
		t.Errorf("second request should be limited")
	}
}

func TestConfigSettings(t *testing.T) {
	tests := []struct {
		c        Config
		expMax   int
		expSweep time.Duration
		expIdle  time.Duration
	}{
		{Config{}, DefaultMaxClients, DefaultSweep, DefaultIdleTimeout},
		{Config{MaxClients: 5, Sweep: 2 * time.Second}, 5, 2 * time.Second, DefaultIdleTimeout},
		{Config{MaxClients: -1, Sweep: -time.Second, IdleTimeout: time.Second}, DefaultMaxClients, DefaultSweep, time.Second},
	}
	for i, test := range tests {
		s := test.c.settings()
		if s.maxClients != test.expMax || s.sweep != test.expSweep || s.idleTimeout != test.expIdle {
			t.Errorf("Test %v: unexpected settings %v/%v/%v", i, s.maxClients, s.sweep, s.idleTimeout)
		}
	}
	s := Config{Limit: 2, Burst: 3, Exempt: []string{"a", "b"}}.settings()
	if s.limit != 2 || s.burst != 3 || len(s.exempt) != 2 {
		t.Errorf("unexpected settings %+v", s)
	}
}

func TestLimiterPerID_StartStop(t *testing.T) {
	lpi := newTestLimiter()
	lpi.s.maxClients = 0
	lpi.stopC = make(chan struct{})
	lpi.AllowN(id1, 1)
	lpi.t.(*testTimer).tick()
	lpi.t.(*testTimer).tick()

	done := make(chan struct{})
	go func() {
		lpi.maintainLoop()
		close(done)
	}()
	deadline := time.Now().Add(5 * time.Second)
	for {
		lpi.lock.Lock()
		n := lpi.evictList.Len()
		lpi.lock.Unlock()
		if n == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("limiter was not evicted")
		}
		time.Sleep(time.Millisecond)
	}
	lpi.Stop()
	lpi.Stop()
	<-done
}

type testStep struct {
	id  string
	n   int
	exp bool
}

func newTestLimiter() *limiterPerID {
	return &limiterPerID{
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		t:         &testTimer{time.Now()},
		s:         testSettings,
	}
}

var testSettings = settings{
	limit:       rate.Every(100 * time.Second),
	burst:       2,
	maxClients:  1,
	sweep:       time.Second,
	idleTimeout: 1 * time.Second,
	exempt:      make(map[string]struct{}),
}

// testTimer will increment 1 sec per call
type testTimer struct {
	c time.Time
}

func (t *testTimer) now() time.Time {
	return t.c
}

func (t *testTimer) tick() {
	t.c = t.c.Add(time.Second)
}

func (t *testTimer) since(t2 time.Time) time.Duration {
	return t.c.Sub(t2)
}

func (t *testTimer) newTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(time.Nanosecond)
}
