package intelcache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equity-intel/internal/intelligence"
	"equity-intel/internal/sentiment"
)

type countingRunner struct {
	calls   int32
	release chan struct{}
}

func (r *countingRunner) RunIntelligence(ctx context.Context, req intelligence.Request) *intelligence.Report {
	atomic.AddInt32(&r.calls, 1)
	if r.release != nil {
		<-r.release
	}
	return &intelligence.Report{Ticker: req.Normalized().Ticker, Prediction: req.Prediction, Confidence: req.Confidence}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)}
}

func TestKeyIgnoresIndicatorOrderAndTickerCase(t *testing.T) {
	a := intelligence.Request{Ticker: "xyz", Prediction: "UP", Confidence: 80,
		Indicators: sentiment.Indicators{"MA20": 105, "RSI": 55}}
	b := intelligence.Request{Ticker: "XYZ ", Prediction: "UP", Confidence: 80,
		Indicators: sentiment.Indicators{"RSI": 55, "MA20": 105}}
	assert.Equal(t, Key(a), Key(b))
	assert.Equal(t, "XYZ|UP|80|MA20=105|RSI=55", Key(a))

	c := b
	c.Confidence = 80.5
	assert.NotEqual(t, Key(a), Key(c))

	d := intelligence.Request{Ticker: "XYZ", Prediction: "UP", Confidence: 80,
		Indicators: sentiment.Indicators{"MA20": 105, "RSI": 56}}
	assert.NotEqual(t, Key(a), Key(d))
}

func TestCacheHitAndExpiry(t *testing.T) {
	clock := newClock()
	inner := &countingRunner{}
	c := New(inner, 5*time.Minute, 0, WithClock(clock.Now))
	defer c.Close()

	req := intelligence.Request{Ticker: "XYZ", Prediction: "UP", Confidence: 80}
	first := c.RunIntelligence(context.Background(), req)
	second := c.RunIntelligence(context.Background(), req)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.calls))
	assert.Equal(t, []string{"XYZ|UP|80"}, c.Keys())

	clock.Advance(6 * time.Minute)
	assert.Empty(t, c.Keys())
	third := c.RunIntelligence(context.Background(), req)
	assert.NotSame(t, first, third)
	assert.Equal(t, int32(2), atomic.LoadInt32(&inner.calls))
}

func TestConcurrentIdenticalRequestsRunOnce(t *testing.T) {
	inner := &countingRunner{release: make(chan struct{})}
	c := New(inner, time.Minute, 0)
	defer c.Close()

	req := intelligence.Request{Ticker: "XYZ", Prediction: "UP", Confidence: 80}

	const n = 10
	var wg sync.WaitGroup
	reports := make([]*intelligence.Report, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i] = c.RunIntelligence(context.Background(), req)
		}(i)
	}

	// Let the writer start before releasing it
	require.Eventually(t, func() bool { return atomic.LoadInt32(&inner.calls) >= 1 }, time.Second, time.Millisecond)
	close(inner.release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.calls))
	for _, r := range reports {
		assert.Same(t, reports[0], r)
	}
}

func TestClearAndCleanup(t *testing.T) {
	clock := newClock()
	inner := &countingRunner{}
	c := New(inner, time.Minute, 0, WithClock(clock.Now))
	defer c.Close()

	c.RunIntelligence(context.Background(), intelligence.Request{Ticker: "AAA", Prediction: "UP"})
	c.RunIntelligence(context.Background(), intelligence.Request{Ticker: "BBB", Prediction: "UP"})
	assert.Len(t, c.Keys(), 2)

	clock.Advance(2 * time.Minute)
	c.cleanup()
	c.mu.Lock()
	assert.Empty(t, c.data)
	c.mu.Unlock()

	c.RunIntelligence(context.Background(), intelligence.Request{Ticker: "AAA", Prediction: "UP"})
	assert.Len(t, c.Keys(), 1)
	c.Clear()
	assert.Empty(t, c.Keys())
	assert.Equal(t, int32(3), atomic.LoadInt32(&inner.calls))
}

func TestKeyIncludesCloses(t *testing.T) {
	base := intelligence.Request{Ticker: "XYZ", Prediction: "UP", Confidence: 80}
	a := base
	a.Closes = []float64{100, 101, 102}
	b := base
	b.Closes = []float64{100, 101, 103}

	assert.Equal(t, "XYZ|UP|80", Key(base))
	assert.Contains(t, Key(a), "|closes=3:")
	assert.NotEqual(t, Key(a), Key(b))
	assert.Equal(t, Key(a), Key(intelligence.Request{Ticker: "xyz", Prediction: "UP", Confidence: 80, Closes: []float64{100, 101, 102}}))
}

func TestCancelledWaiterDoesNotRunPipeline(t *testing.T) {
	inner := &countingRunner{release: make(chan struct{})}
	c := New(inner, time.Minute, 0)
	defer c.Close()

	req := intelligence.Request{Ticker: "XYZ", Prediction: "UP", Confidence: 80}

	writerDone := make(chan *intelligence.Report)
	go func() {
		writerDone <- c.RunIntelligence(context.Background(), req)
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&inner.calls) == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, c.RunIntelligence(ctx, req))
	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.calls))

	close(inner.release)
	assert.NotNil(t, <-writerDone)
	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.calls))
}
