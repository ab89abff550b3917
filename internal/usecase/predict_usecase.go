package usecase

import (
	"context"
	"time"

	"Jyotish/internal/domain/models"
	drepo "Jyotish/internal/domain/repository"
	sm "Jyotish/internal/service/metrics"
	"Jyotish/internal/services/dasha"
	"Jyotish/internal/services/predict"
	"Jyotish/internal/services/timeloc"
	"Jyotish/internal/services/transit"
)

// PredictUseCase runs the three-stage event predictor and forwards locked
// events to the bus when one is configured.
type PredictUseCase struct {
	charts  *ChartUseCase
	vim     *dasha.Engine
	tracker *transit.Tracker
	tl      *timeloc.Service
	proc    *ActivationProcessor
	metrics drepo.Metrics
	cfg     predict.Config
}

func NewPredictUseCase(
	charts *ChartUseCase,
	vim *dasha.Engine,
	tracker *transit.Tracker,
	tl *timeloc.Service,
	proc *ActivationProcessor,
	metrics drepo.Metrics,
	cfg predict.Config,
) *PredictUseCase {
	return &PredictUseCase{
		charts:  charts,
		vim:     vim,
		tracker: tracker,
		tl:      tl,
		proc:    proc,
		metrics: metrics,
		cfg:     cfg,
	}
}

func eventTypes(names []string) []models.EventType {
	if len(names) == 0 {
		return nil
	}
	out := make([]models.EventType, 0, len(names))
	for _, n := range names {
		out = append(out, models.EventType(n))
	}
	return out
}

// Predict scans [from, to] for authorized and triggered events. A request
// may tighten the strict flag but never loosen the configured one.
func (uc *PredictUseCase) Predict(ctx context.Context, req models.PredictRequest) ([]models.PredictedEvent, error) {
	startJD, err := uc.tl.ParseInstant(req.From)
	if err != nil {
		return nil, models.WrapCoded(models.CodeInvalidDate, "invalid prediction start", err)
	}
	endJD, err := uc.tl.ParseInstant(req.To)
	if err != nil {
		return nil, models.WrapCoded(models.CodeInvalidDate, "invalid prediction end", err)
	}

	c, err := uc.charts.Chart(ctx, req.Spec())
	if err != nil {
		return nil, err
	}

	cfg := uc.cfg
	cfg.Strict = cfg.Strict || req.Strict
	pr := predict.NewPredictor(uc.vim, uc.tracker, cfg)

	start := time.Now()
	events, err := pr.Predict(ctx, c, eventTypes(req.Events), startJD, endJD)
	if err != nil {
		uc.metrics.RecordError("predict")
		sm.ScanErrors.WithLabelValues("predict").Inc()
		if len(events) == 0 {
			return nil, err
		}
		// cancelled scans still surface the partial result
	}
	sm.ScanLatency.WithLabelValues("predict").Observe(time.Since(start).Seconds())
	sm.ScanRangeDays.WithLabelValues("predict").Observe(endJD - startJD)
	uc.metrics.RecordLatency("predict", time.Since(start).Seconds())

	if uc.proc != nil {
		hash := req.Spec().Hash()
		for i := range events {
			_ = uc.proc.PublishEvent(ctx, hash, &events[i])
		}
	}
	return events, err
}
