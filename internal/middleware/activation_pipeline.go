package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Jyotish/internal/domain/models"
	domrepo "Jyotish/internal/domain/repository"
)

// Proc is the minimal downstream interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, birthHash string, a *models.Activation) error
}

// item pairs an activation with the scan it belongs to.
type item struct {
	birthHash  string
	activation *models.Activation
}

// ActivationPipeline sits between the transit scanner and the publisher.
// It validates, throttles per birth hash, optionally transforms, and
// buffers when downstream is unavailable.
type ActivationPipeline struct {
	proc     Proc
	metrics  domrepo.Metrics
	maxRPS   int
	bufSize  int
	bufCh    chan item
	stopCh   chan struct{}
	started  bool
	mu       sync.Mutex
	lastSeen map[string]time.Time // per-hash last accepted time
	// optional enrichment hook
	transform func(*models.Activation) *models.Activation
	// metrics
	bufDepthGauge func(int)
	throttleWarn  func(string)
}

type PipelineOption func(*ActivationPipeline)

// WithMaxRPS sets the max activations per second per birth hash.
func WithMaxRPS(n int) PipelineOption {
	return func(p *ActivationPipeline) {
		if n > 0 {
			p.maxRPS = n
		}
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *ActivationPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// WithTransform sets an enrichment hook applied before forwarding.
func WithTransform(fn func(*models.Activation) *models.Activation) PipelineOption {
	return func(p *ActivationPipeline) { p.transform = fn }
}

// NewActivationPipeline creates a new pipeline.
func NewActivationPipeline(proc Proc, metrics domrepo.Metrics, opts ...PipelineOption) *ActivationPipeline {
	p := &ActivationPipeline{
		proc:     proc,
		metrics:  metrics,
		maxRPS:   200,  // scans burst far harder than live feeds
		bufSize:  1024, // default buffer
		bufCh:    make(chan item, 1024),
		stopCh:   make(chan struct{}),
		lastSeen: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufSize != cap(p.bufCh) {
		p.bufCh = make(chan item, p.bufSize)
	}
	p.bufDepthGauge = func(n int) { p.metrics.RecordLatency("pipeline_buffer_depth", float64(n)) }
	p.throttleWarn = func(hash string) { p.metrics.RecordError("pipeline_throttle") }
	return p
}

// Start launches background flushing of buffered activations.
func (p *ActivationPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case it := <-p.bufCh:
				if it.activation == nil {
					continue
				}
				if err := p.proc.Process(ctx, it.birthHash, it.activation); err != nil {
					// exponential backoff with cap
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- it:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *ActivationPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process validates, throttles, and forwards an activation downstream,
// buffering on errors.
func (p *ActivationPipeline) Process(ctx context.Context, birthHash string, a *models.Activation) error {
	start := time.Now()
	if err := validateActivation(birthHash, a); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if p.transform != nil {
		a = p.transform(a)
		if err := validateActivation(birthHash, a); err != nil {
			p.metrics.RecordError("pipeline_transform_invalid")
			return err
		}
	}
	if !p.allow(birthHash, start) {
		// throttled; record and drop silently
		p.metrics.RecordError("pipeline_throttle")
		if p.throttleWarn != nil {
			p.throttleWarn(birthHash)
		}
		return nil
	}

	if err := p.proc.Process(ctx, birthHash, a); err != nil {
		p.metrics.RecordError("pipeline_process")
		// buffer non-blocking
		select {
		case p.bufCh <- item{birthHash: birthHash, activation: a}:
			if p.bufDepthGauge != nil {
				p.bufDepthGauge(len(p.bufCh))
			}
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validateActivation(birthHash string, a *models.Activation) error {
	if a == nil {
		return fmt.Errorf("activation nil")
	}
	if birthHash == "" {
		return fmt.Errorf("birth hash empty")
	}
	if a.JD <= 0 {
		return fmt.Errorf("jd invalid")
	}
	if a.Kind == "" {
		return fmt.Errorf("kind empty")
	}
	return nil
}

func (p *ActivationPipeline) allow(hash string, now time.Time) bool {
	if p.maxRPS <= 0 {
		return true
	}
	// simple throttle: at most maxRPS per second per scan
	last := p.lastSeen[hash]
	if last.IsZero() {
		p.lastSeen[hash] = now
		return true
	}
	if now.Sub(last) < time.Second/time.Duration(p.maxRPS) {
		return false
	}
	p.lastSeen[hash] = now
	return true
}
