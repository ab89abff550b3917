package usecase

import (
	"context"
	"fmt"
	"time"

	"Jyotish/internal/domain/models"
	drepo "Jyotish/internal/domain/repository"
)

// ActivationProcessor routes computed activations to the configured backend.
// It sits downstream of the pipeline and implements middleware.Proc.
type ActivationProcessor struct {
	pub     drepo.Publisher
	archive drepo.Archive
	metrics drepo.Metrics
	backend string
}

// NewActivationProcessor creates a new ActivationProcessor instance.
func NewActivationProcessor(
	pub drepo.Publisher,
	archive drepo.Archive,
	metrics drepo.Metrics,
	backend string,
) *ActivationProcessor {
	return &ActivationProcessor{
		pub:     pub,
		archive: archive,
		metrics: metrics,
		backend: backend,
	}
}

// Process routes a single activation to the configured backend.
func (p *ActivationProcessor) Process(ctx context.Context, birthHash string, a *models.Activation) error {
	if a == nil {
		return fmt.Errorf("activation is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.PublishActivation(ctx, birthHash, a)
	case "clickhouse":
		err = p.archive.StoreBatch(ctx, birthHash, []models.Activation{*a})
	case "none":
		// scan results are returned inline only
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process activation: %w", err)
	}

	p.metrics.RecordActivations(string(a.Kind), 1)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())

	return nil
}

// ProcessBatch routes multiple activations in a batch.
func (p *ActivationProcessor) ProcessBatch(ctx context.Context, birthHash string, as []models.Activation) error {
	if len(as) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.PublishActivationBatch(ctx, birthHash, as)
	case "clickhouse":
		err = p.archive.StoreBatch(ctx, birthHash, as)
	case "none":
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for i := range as {
		p.metrics.RecordActivations(string(as[i].Kind), 1)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())

	return nil
}

// PublishEvent forwards a predicted event to the bus when one is configured.
func (p *ActivationProcessor) PublishEvent(ctx context.Context, birthHash string, e *models.PredictedEvent) error {
	if p.backend != "kafka" {
		return nil
	}
	if err := p.pub.PublishEvent(ctx, birthHash, e); err != nil {
		p.metrics.RecordError("publish_event")
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Close closes underlying resources if available.
func (p *ActivationProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.archive != nil {
		_ = p.archive.Close()
	}
}
