package usecase

import (
	"context"
	"time"

	"Jyotish/internal/domain/models"
	drepo "Jyotish/internal/domain/repository"
	"Jyotish/internal/middleware"
	sm "Jyotish/internal/service/metrics"
	"Jyotish/internal/services/timeloc"
	"Jyotish/internal/services/transit"
)

// TimelineUseCase runs transit scans against a natal chart and pushes the
// resulting activation stream through the pipeline to the configured sink.
// The scan result is always returned inline regardless of backend.
type TimelineUseCase struct {
	charts   *ChartUseCase
	tracker  *transit.Tracker
	tl       *timeloc.Service
	pipeline *middleware.ActivationPipeline
	metrics  drepo.Metrics
}

func NewTimelineUseCase(
	charts *ChartUseCase,
	tracker *transit.Tracker,
	tl *timeloc.Service,
	pipeline *middleware.ActivationPipeline,
	metrics drepo.Metrics,
) *TimelineUseCase {
	return &TimelineUseCase{
		charts:   charts,
		tracker:  tracker,
		tl:       tl,
		pipeline: pipeline,
		metrics:  metrics,
	}
}

// kindFilter maps request strings onto the scan filter. Unknown kinds are
// ignored; an empty list means all kinds.
func kindFilter(kinds []string) transit.Filter {
	if len(kinds) == 0 {
		return nil
	}
	f := make(transit.Filter, len(kinds))
	for _, k := range kinds {
		f[models.ActivationKind(k)] = true
	}
	return f
}

// Bounds parses a scan range into Julian Days.
func (uc *TimelineUseCase) Bounds(from, to string) (startJD, endJD float64, err error) {
	if startJD, err = uc.tl.ParseInstant(from); err != nil {
		return 0, 0, models.WrapCoded(models.CodeInvalidDate, "invalid scan start", err)
	}
	if endJD, err = uc.tl.ParseInstant(to); err != nil {
		return 0, 0, models.WrapCoded(models.CodeInvalidDate, "invalid scan end", err)
	}
	if endJD < startJD {
		return 0, 0, models.NewCodedError(models.CodeInvalidDate, "scan end precedes start")
	}
	return startJD, endJD, nil
}

// Scan computes the activation timeline for [from, to].
func (uc *TimelineUseCase) Scan(ctx context.Context, spec models.BirthSpec, from, to string, kinds []string) (*models.ScanResult, error) {
	startJD, endJD, err := uc.Bounds(from, to)
	if err != nil {
		return nil, err
	}
	return uc.ScanJD(ctx, spec, startJD, endJD, kinds)
}

// ScanJD is Scan with the range already resolved. The streaming handler
// calls it per chunk.
func (uc *TimelineUseCase) ScanJD(ctx context.Context, spec models.BirthSpec, startJD, endJD float64, kinds []string) (*models.ScanResult, error) {
	natal, err := uc.charts.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := uc.tracker.Scan(ctx, natal, startJD, endJD, kindFilter(kinds))
	if err != nil {
		uc.metrics.RecordError("scan")
		sm.ScanErrors.WithLabelValues("scan").Inc()
		return nil, err
	}
	sm.ScanLatency.WithLabelValues("timeline").Observe(time.Since(start).Seconds())
	sm.ScanRangeDays.WithLabelValues("timeline").Observe(endJD - startJD)
	uc.metrics.RecordLatency("scan", time.Since(start).Seconds())

	if uc.pipeline != nil {
		hash := spec.Hash()
		for i := range res.Activations {
			a := res.Activations[i]
			_ = uc.pipeline.Process(ctx, hash, &a)
		}
	}

	return &res, nil
}
