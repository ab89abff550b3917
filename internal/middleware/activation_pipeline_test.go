package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Jyotish/internal/domain/models"
)

type recordingProc struct {
	mu   sync.Mutex
	seen []models.Activation
	err  error
}

func (r *recordingProc) Process(_ context.Context, _ string, a *models.Activation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.seen = append(r.seen, *a)
	return nil
}

func (r *recordingProc) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

type countingMetrics struct {
	mu     sync.Mutex
	errs   map[string]int
	latOps map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{errs: map[string]int{}, latOps: map[string]int{}}
}

func (m *countingMetrics) RecordChartComputed(string)    {}
func (m *countingMetrics) RecordCache(string, bool)      {}
func (m *countingMetrics) RecordActivations(string, int) {}
func (m *countingMetrics) RecordError(kind string)       { m.mu.Lock(); m.errs[kind]++; m.mu.Unlock() }
func (m *countingMetrics) RecordLatency(op string, _ float64) {
	m.mu.Lock()
	m.latOps[op]++
	m.mu.Unlock()
}

func (m *countingMetrics) errCount(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errs[kind]
}

func peakActivation() *models.Activation {
	return &models.Activation{
		JD:          2451545,
		Kind:        models.KindAspectPeak,
		Planet:      models.Saturn,
		NatalTarget: "Moon",
		Strength:    1,
	}
}

func TestPipelineForwards(t *testing.T) {
	proc := &recordingProc{}
	m := newCountingMetrics()
	p := NewActivationPipeline(proc, m)

	if err := p.Process(context.Background(), "h1", peakActivation()); err != nil {
		t.Fatal(err)
	}
	if proc.count() != 1 {
		t.Fatalf("forwarded = %d, want 1", proc.count())
	}
	if m.latOps["pipeline_process"] != 1 {
		t.Fatalf("latency not recorded")
	}
}

func TestPipelineValidation(t *testing.T) {
	proc := &recordingProc{}
	m := newCountingMetrics()
	p := NewActivationPipeline(proc, m)
	ctx := context.Background()

	cases := []struct {
		name string
		hash string
		a    *models.Activation
	}{
		{"nil activation", "h1", nil},
		{"empty hash", "", peakActivation()},
		{"zero jd", "h1", &models.Activation{Kind: models.KindIngress}},
		{"empty kind", "h1", &models.Activation{JD: 2451545}},
	}
	for _, tc := range cases {
		if err := p.Process(ctx, tc.hash, tc.a); err == nil {
			t.Fatalf("%s: want validation error", tc.name)
		}
	}
	if proc.count() != 0 {
		t.Fatalf("invalid activations forwarded")
	}
	if m.errCount("pipeline_validate") != len(cases) {
		t.Fatalf("validate errors = %d, want %d", m.errCount("pipeline_validate"), len(cases))
	}
}

func TestPipelineThrottle(t *testing.T) {
	proc := &recordingProc{}
	m := newCountingMetrics()
	p := NewActivationPipeline(proc, m, WithMaxRPS(1))
	ctx := context.Background()

	// first passes, immediate second is inside the per-hash window
	if err := p.Process(ctx, "h1", peakActivation()); err != nil {
		t.Fatal(err)
	}
	if err := p.Process(ctx, "h1", peakActivation()); err != nil {
		t.Fatalf("throttled activation must drop silently, got %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("forwarded = %d, want 1", proc.count())
	}
	if m.errCount("pipeline_throttle") == 0 {
		t.Fatalf("throttle not recorded")
	}

	// a different scan hash is not throttled
	if err := p.Process(ctx, "h2", peakActivation()); err != nil {
		t.Fatal(err)
	}
	if proc.count() != 2 {
		t.Fatalf("forwarded = %d, want 2", proc.count())
	}
}

func TestPipelineTransform(t *testing.T) {
	proc := &recordingProc{}
	p := NewActivationPipeline(proc, newCountingMetrics(), WithTransform(func(a *models.Activation) *models.Activation {
		out := *a
		out.Impact = models.ImpactBenefic
		return &out
	}))

	if err := p.Process(context.Background(), "h1", peakActivation()); err != nil {
		t.Fatal(err)
	}
	if proc.seen[0].Impact != models.ImpactBenefic {
		t.Fatalf("transform not applied: %+v", proc.seen[0])
	}
}

func TestPipelineBuffersOnFailure(t *testing.T) {
	proc := &recordingProc{err: errors.New("sink offline")}
	m := newCountingMetrics()
	p := NewActivationPipeline(proc, m, WithBufferSize(4))

	err := p.Process(context.Background(), "h1", peakActivation())
	if err == nil {
		t.Fatal("want downstream error")
	}
	if len(p.bufCh) != 1 {
		t.Fatalf("buffered = %d, want 1", len(p.bufCh))
	}
	if m.errCount("pipeline_process") != 1 {
		t.Fatalf("process error not recorded")
	}
}

func TestPipelineFlushDrains(t *testing.T) {
	proc := &recordingProc{err: errors.New("sink offline")}
	m := newCountingMetrics()
	p := NewActivationPipeline(proc, m, WithBufferSize(4))
	ctx := context.Background()

	_ = p.Process(ctx, "h1", peakActivation())

	// downstream recovers before the flusher starts
	proc.mu.Lock()
	proc.err = nil
	proc.mu.Unlock()

	p.Start(ctx)
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for proc.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("buffered activation never flushed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPipelineStopIdempotent(t *testing.T) {
	p := NewActivationPipeline(&recordingProc{}, newCountingMetrics())
	p.Start(context.Background())
	p.Stop()
	p.Stop()
}
