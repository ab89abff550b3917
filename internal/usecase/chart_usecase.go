package usecase

import (
	"context"
	"fmt"
	"time"

	"Jyotish/internal/domain/models"
	drepo "Jyotish/internal/domain/repository"
	"Jyotish/internal/services/ashtakavarga"
	"Jyotish/internal/services/chart"
	"Jyotish/internal/services/specialty"
	"Jyotish/internal/services/strength"
	"Jyotish/internal/services/varga"
	"Jyotish/internal/services/yoga"
	pkgcache "Jyotish/pkg/cache"
)

// ChartUseCase builds birth charts and their derived views, caching the
// chart itself by birth hash so every view after the first is pure table
// work.
type ChartUseCase struct {
	calc     *chart.Calculator
	shadbala *strength.Calculator
	yogas    *yoga.Detector
	cache    pkgcache.Service
	metrics  drepo.Metrics
	chartTTL time.Duration
}

func NewChartUseCase(calc *chart.Calculator, shadbala *strength.Calculator, yogas *yoga.Detector, cache pkgcache.Service, metrics drepo.Metrics, chartTTL time.Duration) *ChartUseCase {
	return &ChartUseCase{
		calc:     calc,
		shadbala: shadbala,
		yogas:    yogas,
		cache:    cache,
		metrics:  metrics,
		chartTTL: chartTTL,
	}
}

// Chart resolves a BirthSpec, consulting the cache first.
func (uc *ChartUseCase) Chart(ctx context.Context, spec models.BirthSpec) (*models.BirthChart, error) {
	key := pkgcache.GenerateKey("chart", spec.Hash())
	if uc.cache != nil {
		var cached models.BirthChart
		if err := uc.cache.Get(ctx, key, &cached); err == nil {
			uc.metrics.RecordCache("chart", true)
			return &cached, nil
		}
		uc.metrics.RecordCache("chart", false)
	}

	start := time.Now()
	c, err := uc.calc.Chart(spec)
	if err != nil {
		uc.metrics.RecordError("chart")
		return nil, err
	}
	uc.metrics.RecordChartComputed("rasi")
	uc.metrics.RecordLatency("chart", time.Since(start).Seconds())

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, c, uc.chartTTL)
	}
	return c, nil
}

// Payload returns the external chart shape, optionally for a divisional
// chart when n > 1.
func (uc *ChartUseCase) Payload(ctx context.Context, spec models.BirthSpec, n int) (interface{}, error) {
	c, err := uc.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}
	if n <= 1 {
		return models.ChartPayloadOf(c), nil
	}
	d, err := varga.Divisional(c, n)
	if err != nil {
		return nil, err
	}
	uc.metrics.RecordChartComputed(fmt.Sprintf("d%d", n))
	return d, nil
}

// Shadbala computes the six-fold strengths plus the dignity annexes.
type ShadbalaView struct {
	Strengths    []models.ShadbalaResult `json:"strengths"`
	NeechaBhanga []*models.NeechaBhanga  `json:"neecha_bhanga,omitempty"`
	Wars         []models.PlanetaryWar   `json:"planetary_wars,omitempty"`
	Vargottama   []models.Planet         `json:"vargottama,omitempty"`
}

func (uc *ChartUseCase) Shadbala(ctx context.Context, spec models.BirthSpec) (*ShadbalaView, error) {
	c, err := uc.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}
	view := &ShadbalaView{
		Strengths:  uc.shadbala.All(c),
		Wars:       strength.Wars(c),
		Vargottama: varga.Vargottama(c),
	}
	for _, p := range models.SevenPlanets() {
		if nb := strength.NeechaBhanga(c, p); nb != nil {
			view.NeechaBhanga = append(view.NeechaBhanga, nb)
		}
	}
	return view, nil
}

func (uc *ChartUseCase) Yogas(ctx context.Context, spec models.BirthSpec, mundane bool) ([]models.YogaMatch, error) {
	c, err := uc.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}
	if mundane {
		return uc.yogas.DetectMundane(c), nil
	}
	return uc.yogas.Detect(c), nil
}

func (uc *ChartUseCase) Ashtakavarga(ctx context.Context, spec models.BirthSpec) (*models.AshtakavargaResult, error) {
	c, err := uc.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}
	res := ashtakavarga.SAV(c)
	return &res, nil
}

func (uc *ChartUseCase) Karma(ctx context.Context, spec models.BirthSpec) (*models.KarmaContext, error) {
	c, err := uc.Chart(ctx, spec)
	if err != nil {
		return nil, err
	}
	kc := specialty.KarmaContext(c)
	return &kc, nil
}
