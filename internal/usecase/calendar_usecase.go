package usecase

import (
	"context"
	"strconv"
	"time"

	"Jyotish/internal/domain/models"
	drepo "Jyotish/internal/domain/repository"
	vcache "Jyotish/internal/service/cache"
	"Jyotish/internal/services/nakshatra"
	"Jyotish/internal/services/timeloc"
	pkgcache "Jyotish/pkg/cache"
)

// CalendarUseCase serves year nakshatra calendars. Scanning a full year is
// the most expensive read path, so results live in a bounded in-process
// cache and a distributed lock dedupes concurrent misses per key.
type CalendarUseCase struct {
	scanner *nakshatra.CalendarScanner
	tl      *timeloc.Service
	views   *vcache.ViewCache
	locker  pkgcache.Service
	metrics drepo.Metrics
	ttl     time.Duration
}

func NewCalendarUseCase(
	scanner *nakshatra.CalendarScanner,
	tl *timeloc.Service,
	views *vcache.ViewCache,
	locker pkgcache.Service,
	metrics drepo.Metrics,
	ttl time.Duration,
) *CalendarUseCase {
	return &CalendarUseCase{
		scanner: scanner,
		tl:      tl,
		views:   views,
		locker:  locker,
		metrics: metrics,
		ttl:     ttl,
	}
}

func coord(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// Year returns the nakshatra calendar for the given civil year at a place.
func (uc *CalendarUseCase) Year(ctx context.Context, req models.CalendarRequest) (*models.NakshatraCalendar, error) {
	tz, err := uc.resolveTZ(req)
	if err != nil {
		return nil, err
	}

	key := vcache.CalendarKey(req.Year, coord(req.Lat), coord(req.Lon))
	if v, ok := uc.views.Get(key); ok {
		uc.metrics.RecordCache("calendar", true)
		return v.(*models.NakshatraCalendar), nil
	}
	uc.metrics.RecordCache("calendar", false)

	if uc.locker != nil {
		if ok, lockErr := uc.locker.TryLock(ctx, pkgcache.GenerateKey("lock", key), 30*time.Second); lockErr == nil && ok {
			defer func() { _ = uc.locker.Unlock(context.WithoutCancel(ctx), pkgcache.GenerateKey("lock", key)) }()
		} else if lockErr == nil && !ok {
			// another worker is computing; brief wait then re-check
			select {
			case <-ctx.Done():
				return nil, models.WrapCoded(models.CodeCancelled, "calendar scan cancelled", ctx.Err())
			case <-time.After(500 * time.Millisecond):
			}
			if v, ok := uc.views.Get(key); ok {
				uc.metrics.RecordCache("calendar", true)
				return v.(*models.NakshatraCalendar), nil
			}
		}
	}

	start := time.Now()
	cal, err := uc.scanner.YearCalendar(ctx, req.Year, tz, req.Place)
	if err != nil {
		uc.metrics.RecordError("calendar")
		return nil, err
	}
	uc.metrics.RecordChartComputed("calendar")
	uc.metrics.RecordLatency("calendar", time.Since(start).Seconds())

	uc.views.Set(key, cal, uc.ttl)
	return cal, nil
}

func (uc *CalendarUseCase) resolveTZ(req models.CalendarRequest) (float64, error) {
	if req.TZ != nil {
		return *req.TZ, nil
	}
	tz, err := uc.tl.InferTZOffset(req.Lat, req.Lon)
	if err != nil {
		return 0, err
	}
	return tz, nil
}
