//go:build wireinject
// +build wireinject

package di

import (
	"Jyotish/pkg/config"
	"Jyotish/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Core calculators
		ProvideEphemeris,
		ProvideTimeloc,
		ProvideChartCalculator,
		ProvideStrengthCalculator,
		ProvideYogaDetector,
		ProvideDashaService,
		ProvideVimshottari,
		ProvideTracker,
		ProvideCalendarScanner,
		ProvideSadeSatiScanner,

		// Caches
		ProvideCache,
		ProvideViewCache,

		// Backends
		ProvideClickHouseClient,
		ProvideArchive,
		ProvideKafkaProducer,
		ProvidePublisher,
		ProvideActivationProcessor,
		ProvidePipeline,

		// Use cases
		ProvideChartUseCase,
		ProvideDashaUseCase,
		ProvideCalendarUseCase,
		ProvideTimelineUseCase,
		ProvidePredictUseCase,
		ProvideSpecialtyUseCase,

		// HTTP surface
		ProvideAstroHandler,
		ProvideStreamHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
