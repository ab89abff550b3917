package usecase

import (
	"context"
	"sync"
	"time"

	"Jyotish/internal/domain/models"
	drepo "Jyotish/internal/domain/repository"
	sm "Jyotish/internal/service/metrics"
	"Jyotish/internal/services/ashtakavarga"
	"Jyotish/internal/services/chart"
	"Jyotish/internal/services/dasha"
	"Jyotish/internal/services/specialty"
	"Jyotish/internal/services/timeloc"
)

// SpecialtyUseCase serves the timing-overlay views: Kota Chakra, Sudarshana
// year clocks, Sade Sati, Tara/Chandra Bala, Prashna and the trading score.
type SpecialtyUseCase struct {
	charts   *ChartUseCase
	calc     *chart.Calculator
	vim      *dasha.Engine
	sadesati *specialty.SadeSatiScanner
	tl       *timeloc.Service
	metrics  drepo.Metrics
	timeout  time.Duration
}

func NewSpecialtyUseCase(
	charts *ChartUseCase,
	calc *chart.Calculator,
	vim *dasha.Engine,
	sadesati *specialty.SadeSatiScanner,
	tl *timeloc.Service,
	metrics drepo.Metrics,
) *SpecialtyUseCase {
	return &SpecialtyUseCase{
		charts:   charts,
		calc:     calc,
		vim:      vim,
		sadesati: sadesati,
		tl:       tl,
		metrics:  metrics,
		timeout:  10 * time.Second,
	}
}

// atJD resolves an optional instant string, defaulting to now.
func (uc *SpecialtyUseCase) atJD(at string) (float64, error) {
	if at == "" {
		return timeloc.UTCToJD(time.Now()), nil
	}
	jd, err := uc.tl.ParseInstant(at)
	if err != nil {
		return 0, models.WrapCoded(models.CodeInvalidDate, "invalid instant", err)
	}
	return jd, nil
}

// Kota assesses the fortress siege at the given instant.
func (uc *SpecialtyUseCase) Kota(ctx context.Context, spec models.BirthSpec, at string) (*models.KotaResult, error) {
	natal, err := uc.charts.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}
	jd, err := uc.atJD(at)
	if err != nil {
		return nil, err
	}
	transit, err := uc.calc.ChartAt(jd, spec.Latitude, spec.Longitude)
	if err != nil {
		return nil, err
	}
	res := specialty.Kota(natal, transit)
	return &res, nil
}

// Sudarshana projects the three year clocks over [from, to].
func (uc *SpecialtyUseCase) Sudarshana(ctx context.Context, spec models.BirthSpec, from, to string) (*models.SudarshanaResult, error) {
	natal, err := uc.charts.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}
	fromJD, err := uc.tl.ParseInstant(from)
	if err != nil {
		return nil, models.WrapCoded(models.CodeInvalidDate, "invalid range start", err)
	}
	toJD, err := uc.tl.ParseInstant(to)
	if err != nil {
		return nil, models.WrapCoded(models.CodeInvalidDate, "invalid range end", err)
	}
	res := specialty.Sudarshana(natal, fromJD, toJD)
	return &res, nil
}

// SadeSati scans Saturn's passage around the natal Moon over [from, to].
func (uc *SpecialtyUseCase) SadeSati(ctx context.Context, spec models.BirthSpec, from, to string) ([]models.SadeSatiPhase, error) {
	natal, err := uc.charts.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}
	fromJD, err := uc.tl.ParseInstant(from)
	if err != nil {
		return nil, models.WrapCoded(models.CodeInvalidDate, "invalid range start", err)
	}
	toJD, err := uc.tl.ParseInstant(to)
	if err != nil {
		return nil, models.WrapCoded(models.CodeInvalidDate, "invalid range end", err)
	}

	start := time.Now()
	phases, err := uc.sadesati.Scan(ctx, natal, fromJD, toJD)
	if err != nil && len(phases) == 0 {
		uc.metrics.RecordError("sadesati")
		return nil, err
	}
	sm.ScanLatency.WithLabelValues("sadesati").Observe(time.Since(start).Seconds())
	return phases, err
}

// TaraBalaView pairs the two lunar favourability measures.
type TaraBalaView struct {
	Tara    models.TaraBala    `json:"tara_bala"`
	Chandra models.ChandraBala `json:"chandra_bala"`
}

// TaraBala computes Tara and Chandra Bala for the transit Moon at an instant.
func (uc *SpecialtyUseCase) TaraBala(ctx context.Context, spec models.BirthSpec, at string) (*TaraBalaView, error) {
	natal, err := uc.charts.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}
	jd, err := uc.atJD(at)
	if err != nil {
		return nil, err
	}
	transit, err := uc.calc.ChartAt(jd, spec.Latitude, spec.Longitude)
	if err != nil {
		return nil, err
	}
	natalMoon := natal.Planets[models.Moon].Longitude
	transitMoon := transit.Planets[models.Moon].Longitude
	return &TaraBalaView{
		Tara:    specialty.Tara(natalMoon, transitMoon),
		Chandra: specialty.Chandra(natalMoon, transitMoon),
	}, nil
}

// Prashna casts a horary chart for the question instant and place.
func (uc *SpecialtyUseCase) Prashna(ctx context.Context, req models.PrashnaRequest) (*models.PrashnaVerdict, error) {
	jd, err := uc.atJD(req.At)
	if err != nil {
		return nil, err
	}
	q, err := uc.calc.ChartAt(jd, req.Lat, req.Lon)
	if err != nil {
		return nil, err
	}
	uc.metrics.RecordChartComputed("prashna")
	v := specialty.Prashna(q, req.Topic)
	return &v, nil
}

// Trading composes the luck score. Its three inputs (transit chart, running
// dasha, Ashtakavarga) are independent, so they are gathered concurrently
// the same way the aggregate views do it.
func (uc *SpecialtyUseCase) Trading(ctx context.Context, spec models.BirthSpec, at string) (*models.TradingScore, error) {
	natal, err := uc.charts.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}
	jd, err := uc.atJD(at)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.calc.ChartAt(jd, spec.Latitude, spec.Longitude)
		ch <- item{"transit", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.vim.Current(natal.JD, natal.Planets[models.Moon].Longitude, jd)
		ch <- item{"dasha", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		ch <- item{"sav", ashtakavarga.SAV(natal), nil}
	}()

	go func() { wg.Wait(); close(ch) }()

	var (
		transit *models.BirthChart
		current models.CurrentDashas
		sav     models.AshtakavargaResult
	)
	for it := range ch {
		if it.err != nil {
			uc.metrics.RecordError("trading")
			return nil, it.err
		}
		switch it.name {
		case "transit":
			transit = it.val.(*models.BirthChart)
		case "dasha":
			current = it.val.(models.CurrentDashas)
		case "sav":
			sav = it.val.(models.AshtakavargaResult)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, models.WrapCoded(models.CodeCancelled, "trading snapshot cancelled", err)
	}

	score := specialty.Trading(natal, transit.Planets[models.Moon].Longitude, current[models.Maha].Planet, sav)
	return &score, nil
}
