package intelcache

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"equity-intel/internal/intelligence"
	"equity-intel/internal/interfaces"
	"equity-intel/internal/logger"
)

const defaultCleanupInterval = 10 * time.Minute

// CachedRunner memoises reports per request for a TTL. Concurrent identical
// requests share one computation: the first caller runs the pipeline, the
// rest wait for its report.
type CachedRunner struct {
	inner interfaces.IntelligenceRunner
	ttl   time.Duration
	now   func() time.Time

	mu   sync.Mutex
	data map[string]*cacheEntry

	stop     chan struct{}
	stopOnce sync.Once
}

type cacheEntry struct {
	report   *intelligence.Report
	storedAt time.Time
	ready    chan struct{} // closed once report is set
}

func (e *cacheEntry) done() bool {
	select {
	case <-e.ready:
		return true
	default:
		return false
	}
}

// Option configures a CachedRunner
type Option func(*CachedRunner)

// WithClock overrides the time source used for expiry
func WithClock(now func() time.Time) Option {
	return func(c *CachedRunner) {
		c.now = now
	}
}

// New wraps runner with a report cache. A cleanup goroutine evicts expired
// entries every interval until Close is called; interval <= 0 uses the
// default.
func New(runner interfaces.IntelligenceRunner, ttl time.Duration, interval time.Duration, opts ...Option) *CachedRunner {
	c := &CachedRunner{
		inner: runner,
		ttl:   ttl,
		now:   time.Now,
		data:  make(map[string]*cacheEntry),
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	go c.cleanupLoop(interval)

	return c
}

// Key identifies a request by ticker, prediction, indicator snapshot,
// confidence and close history. Indicator order does not matter; closes are
// folded into a length and FNV-64a digest.
func Key(req intelligence.Request) string {
	req = req.Normalized()

	names := make([]string, 0, len(req.Indicators))
	for k := range req.Indicators {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(req.Ticker)
	b.WriteByte('|')
	b.WriteString(req.Prediction)
	b.WriteByte('|')
	b.WriteString(formatFloat(req.Confidence))
	for _, k := range names {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(formatFloat(req.Indicators[k]))
	}
	if len(req.Closes) > 0 {
		b.WriteString("|closes=")
		b.WriteString(strconv.Itoa(len(req.Closes)))
		b.WriteByte(':')
		b.WriteString(closesDigest(req.Closes))
	}
	return b.String()
}

func closesDigest(closes []float64) string {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range closes {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RunIntelligence returns the cached report for req or computes it. A caller
// whose ctx ends while waiting on another caller's in-flight run gets nil.
func (c *CachedRunner) RunIntelligence(ctx context.Context, req intelligence.Request) *intelligence.Report {
	key := Key(req)

	c.mu.Lock()
	if e, ok := c.data[key]; ok {
		if !e.done() {
			c.mu.Unlock()
			logger.Debug(ctx, "Waiting for in-flight intelligence run", "key", key)
			select {
			case <-e.ready:
				if e.report != nil {
					return e.report
				}
			case <-ctx.Done():
				// Caller is gone; a report built on a dead context would only
				// hold empty stage results.
				logger.Debug(ctx, "Stopped waiting for in-flight intelligence run", "key", key, "error", ctx.Err())
				return nil
			}
			// The writer produced nothing: compute without caching
			return c.inner.RunIntelligence(ctx, req)
		}
		if c.now().Sub(e.storedAt) <= c.ttl {
			c.mu.Unlock()
			logger.Debug(ctx, "Intelligence cache hit", "key", key)
			return e.report
		}
	}

	e := &cacheEntry{ready: make(chan struct{})}
	c.data[key] = e
	c.mu.Unlock()

	report := c.inner.RunIntelligence(ctx, req)

	c.mu.Lock()
	e.report = report
	e.storedAt = c.now()
	if report == nil && c.data[key] == e {
		delete(c.data, key)
	}
	c.mu.Unlock()
	close(e.ready)

	return report
}

// Keys returns the keys of completed, unexpired entries in sorted order
func (c *CachedRunner) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	keys := make([]string, 0, len(c.data))
	for k, e := range c.data {
		if e.done() && now.Sub(e.storedAt) <= c.ttl {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Clear drops every completed entry. In-flight runs still complete for their
// waiters.
func (c *CachedRunner) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.data {
		if e.done() {
			delete(c.data, k)
		}
	}
}

// Close stops the cleanup goroutine
func (c *CachedRunner) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

// cleanupLoop periodically removes expired entries
func (c *CachedRunner) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes expired entries
func (c *CachedRunner) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.data {
		if e.done() && now.Sub(e.storedAt) > c.ttl {
			delete(c.data, k)
		}
	}
}
