package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"Jyotish/internal/domain/models"
)

type fakePublisher struct {
	singles int
	batched int
	events  int
	closed  bool
	err     error
}

func (f *fakePublisher) PublishActivation(_ context.Context, _ string, _ *models.Activation) error {
	if f.err != nil {
		return f.err
	}
	f.singles++
	return nil
}

func (f *fakePublisher) PublishActivationBatch(_ context.Context, _ string, as []models.Activation) error {
	if f.err != nil {
		return f.err
	}
	f.batched += len(as)
	return nil
}

func (f *fakePublisher) PublishEvent(_ context.Context, _ string, _ *models.PredictedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events++
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

type fakeArchive struct {
	stored int
	closed bool
}

func (f *fakeArchive) Init(context.Context) error { return nil }

func (f *fakeArchive) StoreBatch(_ context.Context, _ string, as []models.Activation) error {
	f.stored += len(as)
	return nil
}

func (f *fakeArchive) Health(context.Context) error { return nil }

func (f *fakeArchive) Close() error {
	f.closed = true
	return nil
}

type fakeMetrics struct {
	computed    map[string]int
	cacheHits   map[string]int
	cacheMisses map[string]int
	activations map[string]int
	errors      map[string]int
	latencies   map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		computed:    map[string]int{},
		cacheHits:   map[string]int{},
		cacheMisses: map[string]int{},
		activations: map[string]int{},
		errors:      map[string]int{},
		latencies:   map[string]int{},
	}
}

func (m *fakeMetrics) RecordChartComputed(kind string) { m.computed[kind]++ }

func (m *fakeMetrics) RecordCache(view string, hit bool) {
	if hit {
		m.cacheHits[view]++
	} else {
		m.cacheMisses[view]++
	}
}

func (m *fakeMetrics) RecordActivations(kind string, n int) { m.activations[kind] += n }
func (m *fakeMetrics) RecordError(kind string)              { m.errors[kind]++ }
func (m *fakeMetrics) RecordLatency(op string, _ float64)   { m.latencies[op]++ }

func ingressAt(jd float64) models.Activation {
	return models.Activation{JD: jd, Kind: models.KindIngress, Planet: models.Jupiter, Sign: models.Cancer}
}

func TestProcessKafka(t *testing.T) {
	pub := &fakePublisher{}
	arch := &fakeArchive{}
	m := newFakeMetrics()
	p := NewActivationProcessor(pub, arch, m, "kafka")

	a := ingressAt(2451545)
	if err := p.Process(context.Background(), "h1", &a); err != nil {
		t.Fatal(err)
	}
	if pub.singles != 1 || arch.stored != 0 {
		t.Fatalf("published %d archived %d, want 1/0", pub.singles, arch.stored)
	}
	if m.activations["ingress"] != 1 {
		t.Fatalf("activation count = %d", m.activations["ingress"])
	}
	if m.latencies["process"] != 1 {
		t.Fatalf("latency not recorded")
	}
}

func TestProcessClickhouse(t *testing.T) {
	pub := &fakePublisher{}
	arch := &fakeArchive{}
	m := newFakeMetrics()
	p := NewActivationProcessor(pub, arch, m, "clickhouse")

	a := ingressAt(2451545)
	if err := p.Process(context.Background(), "h1", &a); err != nil {
		t.Fatal(err)
	}
	if arch.stored != 1 || pub.singles != 0 {
		t.Fatalf("archived %d published %d, want 1/0", arch.stored, pub.singles)
	}
}

func TestProcessNoneBackend(t *testing.T) {
	pub := &fakePublisher{}
	arch := &fakeArchive{}
	m := newFakeMetrics()
	p := NewActivationProcessor(pub, arch, m, "none")

	a := ingressAt(2451545)
	if err := p.Process(context.Background(), "h1", &a); err != nil {
		t.Fatal(err)
	}
	if pub.singles != 0 || arch.stored != 0 {
		t.Fatalf("none backend must not forward")
	}
	if m.activations["ingress"] != 1 {
		t.Fatalf("activations still count on the inline backend")
	}
}

func TestProcessNilActivation(t *testing.T) {
	p := NewActivationProcessor(&fakePublisher{}, &fakeArchive{}, newFakeMetrics(), "none")
	if err := p.Process(context.Background(), "h1", nil); err == nil {
		t.Fatal("want error for nil activation")
	}
}

func TestProcessUnknownBackend(t *testing.T) {
	m := newFakeMetrics()
	p := NewActivationProcessor(&fakePublisher{}, &fakeArchive{}, m, "carrier-pigeon")

	a := ingressAt(2451545)
	err := p.Process(context.Background(), "h1", &a)
	if err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Fatalf("err = %v", err)
	}
	if m.errors["process"] != 1 {
		t.Fatalf("error not recorded")
	}
}

func TestProcessPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	m := newFakeMetrics()
	p := NewActivationProcessor(pub, &fakeArchive{}, m, "kafka")

	a := ingressAt(2451545)
	err := p.Process(context.Background(), "h1", &a)
	if err == nil || !strings.Contains(err.Error(), "broker down") {
		t.Fatalf("err = %v", err)
	}
	if m.errors["process"] != 1 {
		t.Fatalf("error not recorded")
	}
	if m.activations["ingress"] != 0 {
		t.Fatalf("failed publish must not count activations")
	}
}

func TestProcessBatch(t *testing.T) {
	pub := &fakePublisher{}
	m := newFakeMetrics()
	p := NewActivationProcessor(pub, &fakeArchive{}, m, "kafka")

	as := []models.Activation{
		ingressAt(2451545),
		{JD: 2451546, Kind: models.KindAspectPeak, Planet: models.Saturn},
		{JD: 2451547, Kind: models.KindAspectPeak, Planet: models.Mars},
	}
	if err := p.ProcessBatch(context.Background(), "h1", as); err != nil {
		t.Fatal(err)
	}
	if pub.batched != 3 {
		t.Fatalf("batched = %d, want 3", pub.batched)
	}
	if m.activations["ingress"] != 1 || m.activations["aspect_peak"] != 2 {
		t.Fatalf("per-kind counts = %v", m.activations)
	}
	if m.latencies["process_batch"] != 1 {
		t.Fatalf("batch latency not recorded")
	}
}

func TestProcessBatchEmpty(t *testing.T) {
	pub := &fakePublisher{}
	m := newFakeMetrics()
	p := NewActivationProcessor(pub, &fakeArchive{}, m, "kafka")

	if err := p.ProcessBatch(context.Background(), "h1", nil); err != nil {
		t.Fatal(err)
	}
	if pub.batched != 0 || len(m.latencies) != 0 {
		t.Fatalf("empty batch must be a no-op")
	}
}

func TestPublishEventKafkaOnly(t *testing.T) {
	pub := &fakePublisher{}
	e := &models.PredictedEvent{House: 10, Probability: 92}

	quiet := NewActivationProcessor(pub, &fakeArchive{}, newFakeMetrics(), "none")
	if err := quiet.PublishEvent(context.Background(), "h1", e); err != nil {
		t.Fatal(err)
	}
	if pub.events != 0 {
		t.Fatalf("events forwarded on non-kafka backend")
	}

	wired := NewActivationProcessor(pub, &fakeArchive{}, newFakeMetrics(), "kafka")
	if err := wired.PublishEvent(context.Background(), "h1", e); err != nil {
		t.Fatal(err)
	}
	if pub.events != 1 {
		t.Fatalf("events = %d, want 1", pub.events)
	}
}

func TestCloseIsNilSafe(t *testing.T) {
	NewActivationProcessor(nil, nil, newFakeMetrics(), "none").Close()

	pub := &fakePublisher{}
	arch := &fakeArchive{}
	NewActivationProcessor(pub, arch, newFakeMetrics(), "kafka").Close()
	if !pub.closed || !arch.closed {
		t.Fatalf("close not propagated")
	}
}
