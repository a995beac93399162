package metrics

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecorderNilSafe(t *testing.T) {
	var r *Recorder
	r.RecordProviderAttempt("p", time.Second, nil)
	r.RecordRateLimit("p", time.Second)
	r.RecordCronRun("schedule", "NFL", time.Second, nil)
	r.RecordSettlement("NFL", "WIN")
	r.RecordCacheWrite("NFL", 3)
	r.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	if snap := r.ProviderSnapshot("p"); snap.Calls != 0 {
		t.Fatalf("expected zero snapshot from nil recorder")
	}
}

func TestRecorderProviderCounters(t *testing.T) {
	r := NewRecorder()
	r.RecordProviderAttempt("sportsfeed", 10*time.Millisecond, nil)
	r.RecordProviderAttempt("sportsfeed", 20*time.Millisecond, errors.New("boom"))
	r.RecordRateLimit("sportsfeed", 2*time.Second)

	snap := r.ProviderSnapshot("sportsfeed")
	if snap.Calls != 2 {
		t.Fatalf("expected 2 calls, got %d", snap.Calls)
	}
	if snap.Errors != 1 {
		t.Fatalf("expected 1 error, got %d", snap.Errors)
	}
	if snap.RateLimitHits != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", snap.RateLimitHits)
	}
	if snap.LastRetryAfter != 2*time.Second {
		t.Fatalf("expected retry-after recorded, got %s", snap.LastRetryAfter)
	}
	if snap.LastCallLatency != 20*time.Millisecond {
		t.Fatalf("expected last latency recorded, got %s", snap.LastCallLatency)
	}
}

func TestRecorderRunCounters(t *testing.T) {
	r := NewRecorder()
	r.RecordCronRun("scoreboard", "NFL", time.Millisecond, nil)
	r.RecordCronRun("scoreboard", "NBA", time.Millisecond, errors.New("boom"))

	snap := r.RunSnapshot("scoreboard")
	if snap.Runs != 2 || snap.Failures != 1 {
		t.Fatalf("unexpected run snapshot: %+v", snap)
	}
	if empty := r.RunSnapshot("missing"); empty.Runs != 0 {
		t.Fatalf("expected empty snapshot for unknown job")
	}
}

func TestSetupDisabledReturnsRecorder(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler != nil {
		t.Fatalf("expected no handler when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown must be a no-op: %v", err)
	}
}

func TestSetupEnabledBuildsInstruments(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: true, ServiceName: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil || handler == nil {
		t.Fatalf("expected recorder and prometheus handler")
	}
	rec.RecordCronRun("schedule", "NFL", time.Millisecond, nil)
	rec.RecordSettlement("NFL", "PUSH")
	rec.RecordCacheWrite("NFL", 5)
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
}
