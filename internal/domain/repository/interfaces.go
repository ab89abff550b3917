package repository

import (
	"context"

	"Jyotish/internal/domain/models"
)

// Publisher pushes computed activations and predicted events onto the
// downstream event bus. The core only produces; it never consumes.
type Publisher interface {
	PublishActivation(ctx context.Context, birthHash string, a *models.Activation) error
	PublishActivationBatch(ctx context.Context, birthHash string, as []models.Activation) error
	PublishEvent(ctx context.Context, birthHash string, e *models.PredictedEvent) error
	Close() error
}

// Archive stores the computed activation stream in the columnar sink for
// analytics backfill. It never holds user or chart data.
type Archive interface {
	Init(ctx context.Context) error
	StoreBatch(ctx context.Context, birthHash string, as []models.Activation) error
	Health(ctx context.Context) error
	Close() error
}

// Metrics is the instrumentation seam the computation layer reports through.
type Metrics interface {
	RecordChartComputed(kind string)
	RecordCache(view string, hit bool)
	RecordActivations(kind string, n int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
