package session

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/mocks"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/types"
)

type manualTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }
func (t *manualTicker) Stop()               { t.stopped.Store(true) }

// fire hands one tick to the poll loop and fails if nobody takes it.
func (t *manualTicker) fire(tb testing.TB) {
	tb.Helper()
	select {
	case t.ch <- time.Now():
	case <-time.After(time.Second):
		tb.Fatal("poll loop did not take the tick")
	}
}

type tickerSet struct {
	mu        sync.Mutex
	all       []*manualTicker
	intervals []time.Duration
}

func (s *tickerSet) factory(d time.Duration) Ticker {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	s.all = append(s.all, t)
	s.intervals = append(s.intervals, d)
	return t
}

func (s *tickerSet) last(tb testing.TB) *manualTicker {
	tb.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(tb, s.all, "no ticker was created")
	return s.all[len(s.all)-1]
}

func (s *tickerSet) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.all)
}

func (s *tickerSet) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.all {
		if !t.stopped.Load() {
			n++
		}
	}
	return n
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *mocks.MockTransport, *tickerSet) {
	t.Helper()
	tr := &mocks.MockTransport{}
	ts := &tickerSet{}
	c := New(tr, append([]Option{WithTickerFactory(ts.factory)}, opts...)...)
	t.Cleanup(c.Close)
	return c, tr, ts
}

func waitFor(t *testing.T, c *Controller, cond func(types.Snapshot) bool) types.Snapshot {
	t.Helper()
	require.Eventually(t, func() bool { return cond(c.Snapshot()) }, 2*time.Second, 5*time.Millisecond)
	return c.Snapshot()
}

func statusIs(s types.LifecycleStatus) func(types.Snapshot) bool {
	return func(snap types.Snapshot) bool { return snap.Status == s }
}

func progress(p float64) *float64 { return &p }

func processing(p float64, msg string) *dto.JobStatusResData {
	return &dto.JobStatusResData{Status: dto.RemoteStatusProcessing, Progress: progress(p), Message: msg}
}
