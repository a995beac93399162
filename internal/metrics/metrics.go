package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type runStats struct {
	runs     int
	failures int
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// cron runs. It is nil-safe so callers never have to guard it.
type Recorder struct {
	mu        sync.Mutex
	providers map[string]*providerStats
	runs      map[string]*runStats
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers: make(map[string]*providerStats),
		runs:      make(map[string]*runStats),
		otel:      otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureProvider(provider)
	r.mu.Lock()
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	stats := r.ensureProvider(provider)
	r.mu.Lock()
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordCronRun tracks one cron-style run (schedule or scoreboard) per league.
func (r *Recorder) RecordCronRun(job string, league string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureRun(job)
	r.mu.Lock()
	stats.runs++
	if err != nil {
		stats.failures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCronRun(job, league, duration, err)
	}
}

// RecordSettlement tracks one settled pick by outcome.
func (r *Recorder) RecordSettlement(league string, outcome string) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordSettlement(league, outcome)
}

// RecordCacheWrite tracks one batched cache write and its entry count.
func (r *Recorder) RecordCacheWrite(league string, entries int) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordCacheWrite(league, entries)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderSnapshot is a copy of the current stats for a provider.
type ProviderSnapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) ProviderSnapshot(provider string) ProviderSnapshot {
	if r == nil {
		return ProviderSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.providers[provider]
	if !ok || stats == nil {
		return ProviderSnapshot{}
	}
	return ProviderSnapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RunSnapshot is a copy of the counters for one cron job.
type RunSnapshot struct {
	Runs     int
	Failures int
}

func (r *Recorder) RunSnapshot(job string) RunSnapshot {
	if r == nil {
		return RunSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.runs[job]
	if !ok || stats == nil {
		return RunSnapshot{}
	}
	return RunSnapshot{Runs: stats.runs, Failures: stats.failures}
}

func (r *Recorder) ensureProvider(provider string) *providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.providers[provider]
	if !ok {
		stats = &providerStats{}
		r.providers[provider] = stats
	}
	return stats
}

func (r *Recorder) ensureRun(job string) *runStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.runs[job]
	if !ok {
		stats = &runStats{}
		r.runs[job] = stats
	}
	return stats
}
