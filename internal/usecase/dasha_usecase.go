package usecase

import (
	"context"
	"time"

	"Jyotish/internal/domain/models"
	drepo "Jyotish/internal/domain/repository"
	vcache "Jyotish/internal/service/cache"
	"Jyotish/internal/services/dasha"
	"Jyotish/internal/services/timeloc"
)

// DashaUseCase resolves the active period stack for any supported system.
// Payloads are cached per (birth, system) for the configured TTL since the
// underlying trees only shift at period boundaries.
type DashaUseCase struct {
	charts  *ChartUseCase
	svc     *dasha.Service
	tl      *timeloc.Service
	views   *vcache.ViewCache
	metrics drepo.Metrics
	ttl     time.Duration
}

func NewDashaUseCase(
	charts *ChartUseCase,
	svc *dasha.Service,
	tl *timeloc.Service,
	views *vcache.ViewCache,
	metrics drepo.Metrics,
	ttl time.Duration,
) *DashaUseCase {
	return &DashaUseCase{
		charts:  charts,
		svc:     svc,
		tl:      tl,
		views:   views,
		metrics: metrics,
		ttl:     ttl,
	}
}

// Result computes the dasha payload for the requested system at the
// requested instant. An empty At means now; an explicit At bypasses the
// cache since cached payloads are pinned to the current moment.
func (uc *DashaUseCase) Result(ctx context.Context, req models.DashaRequest) (*models.DashaPayload, error) {
	spec := req.Spec()
	c, err := uc.charts.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}

	atJD := timeloc.UTCToJD(time.Now())
	pinned := req.At != ""
	if pinned {
		if atJD, err = uc.tl.ParseInstant(req.At); err != nil {
			return nil, models.WrapCoded(models.CodeInvalidDate, "invalid dasha instant", err)
		}
	}

	key := vcache.DashaKey(spec.Hash(), req.System)
	if !pinned {
		if v, ok := uc.views.Get(key); ok {
			uc.metrics.RecordCache("dasha", true)
			return v.(*models.DashaPayload), nil
		}
		uc.metrics.RecordCache("dasha", false)
	}

	start := time.Now()
	payload, err := uc.svc.Result(models.DashaSystem(req.System), c, atJD)
	if err != nil {
		uc.metrics.RecordError("dasha")
		return nil, err
	}
	uc.metrics.RecordLatency("dasha", time.Since(start).Seconds())

	if !pinned {
		uc.views.Set(key, payload, uc.ttl)
	}
	return payload, nil
}
