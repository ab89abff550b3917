package di

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"Jyotish/internal/domain/repository"
	"Jyotish/internal/handler/api"
	mid "Jyotish/internal/middleware"
	internalrepo "Jyotish/internal/repository"
	vcache "Jyotish/internal/service/cache"
	"Jyotish/internal/services/chart"
	"Jyotish/internal/services/dasha"
	"Jyotish/internal/services/ephem"
	"Jyotish/internal/services/nakshatra"
	"Jyotish/internal/services/predict"
	"Jyotish/internal/services/specialty"
	"Jyotish/internal/services/strength"
	"Jyotish/internal/services/timeloc"
	"Jyotish/internal/services/transit"
	"Jyotish/internal/services/yoga"
	"Jyotish/internal/usecase"
	pkgcache "Jyotish/pkg/cache"
	pkgch "Jyotish/pkg/clickhouse"
	"Jyotish/pkg/config"
	pkgkafka "Jyotish/pkg/kafka"
	applogger "Jyotish/pkg/logger"
	"Jyotish/pkg/metrics"
	"Jyotish/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	if cfg.Environment == "development" {
		level = "debug"
	}
	return applogger.New(&applogger.Config{Level: level, Format: "console", Output: "stdout"})
}

// ProvideEphemeris loads the VSOP87 adapter. The data directory is passed
// through the environment the series loader reads.
func ProvideEphemeris(cfg *config.Config) (*ephem.Adapter, error) {
	if cfg.Ephemeris.DataDir != "" {
		if err := os.Setenv("VSOP87", cfg.Ephemeris.DataDir); err != nil {
			return nil, fmt.Errorf("ephemeris data dir: %w", err)
		}
	}
	return ephem.New(ephem.Config{
		MinYear:       cfg.Ephemeris.MinYear,
		MaxYear:       cfg.Ephemeris.MaxYear,
		AyanamsaJ2000: cfg.Ephemeris.AyanamsaJ2000,
	})
}

func ProvideTimeloc() *timeloc.Service { return timeloc.New() }

func ProvideChartCalculator(eph *ephem.Adapter, tl *timeloc.Service) *chart.Calculator {
	return chart.NewCalculator(eph, tl)
}

func ProvideStrengthCalculator() *strength.Calculator { return strength.NewCalculator() }

func ProvideYogaDetector() *yoga.Detector { return yoga.NewDetector() }

func ProvideDashaService(cfg *config.Config) *dasha.Service {
	return dasha.NewService(dasha.ManushyaRule(cfg.Dasha.KalachakraManushyaRule))
}

func ProvideVimshottari(svc *dasha.Service) *dasha.Engine { return svc.Vimshottari() }

func ProvideTracker(eph *ephem.Adapter, cfg *config.Config) *transit.Tracker {
	tc := transit.DefaultConfig()
	if cfg.Scan.FastOrbDeg > 0 {
		tc.FastOrbDeg = cfg.Scan.FastOrbDeg
	}
	if cfg.Scan.SlowOrbDeg > 0 {
		tc.SlowOrbDeg = cfg.Scan.SlowOrbDeg
	}
	if cfg.Scan.MaxRangeDays > 0 {
		tc.MaxDays = cfg.Scan.MaxRangeDays
	}
	return transit.NewTracker(eph, tc)
}

func ProvideCalendarScanner(eph *ephem.Adapter, cfg *config.Config) *nakshatra.CalendarScanner {
	s := nakshatra.NewCalendarScanner(eph)
	s.CorrectionDeg = cfg.Ephemeris.CalendarCorrectionDeg
	return s
}

func ProvideSadeSatiScanner(eph *ephem.Adapter) *specialty.SadeSatiScanner {
	return specialty.NewSadeSatiScanner(eph)
}

// ProvideCache builds the chart cache: layered over Redis when enabled,
// in-process only otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(pkgcache.WithMemoryMaxSize(10000)), nil
	}
	host, portStr, err := net.SplitHostPort(cfg.Cache.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix("jyotish"),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc), nil
}

func ProvideViewCache(cfg *config.Config) *vcache.ViewCache {
	return vcache.NewViewCache(cfg.Cache.CalendarCap)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics { return metrics.New() }

// ProvideClickHouseClient builds the archive client. Only the clickhouse
// backend gets one; other backends run without it.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Backend.Type != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideArchive creates the ClickHouse activation archive and initializes
// its schema.
func ProvideArchive(chClient *pkgch.Client, cfg *config.Config) (repository.Archive, error) {
	if chClient == nil {
		return nil, nil
	}
	archive := internalrepo.NewClickHouseArchive(chClient.DB(), cfg.ClickHouse.Database+".activations")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := archive.Init(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return archive, nil
}

// ProvideKafkaProducer creates a Kafka producer for the kafka backend.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// kafkaLogPublisher adapts the producer to the logger's collector seam.
type kafkaLogPublisher struct {
	p *pkgkafka.Producer
}

func (k kafkaLogPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return k.p.Publish(ctx, topic, nil, payload)
}

// ProvideLogCollector attaches aggregated error-log publishing to the
// logger when a Kafka log topic is configured.
func ProvideLogCollector(l *applogger.Logger, producer *pkgkafka.Producer, cfg *config.Config) {
	if producer == nil || cfg.Kafka.LogTopic == "" {
		return
	}
	l.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   30 * time.Second,
		CountThreshold: 100,
		Topic:          cfg.Kafka.LogTopic,
		Publisher:      kafkaLogPublisher{p: producer},
	})
}

// ProvidePublisher creates the Kafka activation publisher.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.ActivationTopic, cfg.Kafka.EventTopic)
}

// ProvideActivationProcessor creates the backend router.
func ProvideActivationProcessor(
	pub repository.Publisher,
	archive repository.Archive,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.ActivationProcessor {
	return usecase.NewActivationProcessor(pub, archive, m, cfg.Backend.Type)
}

// ProvidePipeline builds the validate/throttle/buffer stage in front of the
// processor.
func ProvidePipeline(proc *usecase.ActivationProcessor, m repository.Metrics, cfg *config.Config) *mid.ActivationPipeline {
	return mid.NewActivationPipeline(proc, m,
		mid.WithMaxRPS(cfg.Scan.MaxRPS),
		mid.WithBufferSize(cfg.Scan.BufferSize),
	)
}

func ProvideChartUseCase(
	calc *chart.Calculator,
	shadbala *strength.Calculator,
	yogas *yoga.Detector,
	cache pkgcache.Service,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.ChartUseCase {
	return usecase.NewChartUseCase(calc, shadbala, yogas, cache, m, cfg.Cache.ChartTTL)
}

func ProvideDashaUseCase(
	charts *usecase.ChartUseCase,
	svc *dasha.Service,
	tl *timeloc.Service,
	views *vcache.ViewCache,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.DashaUseCase {
	return usecase.NewDashaUseCase(charts, svc, tl, views, m, cfg.Cache.DashaTTL)
}

func ProvideCalendarUseCase(
	scanner *nakshatra.CalendarScanner,
	tl *timeloc.Service,
	views *vcache.ViewCache,
	locker pkgcache.Service,
	m repository.Metrics,
) *usecase.CalendarUseCase {
	return usecase.NewCalendarUseCase(scanner, tl, views, locker, m, 24*time.Hour)
}

func ProvideTimelineUseCase(
	charts *usecase.ChartUseCase,
	tracker *transit.Tracker,
	tl *timeloc.Service,
	pipeline *mid.ActivationPipeline,
	m repository.Metrics,
) *usecase.TimelineUseCase {
	return usecase.NewTimelineUseCase(charts, tracker, tl, pipeline, m)
}

func ProvidePredictUseCase(
	charts *usecase.ChartUseCase,
	vim *dasha.Engine,
	tracker *transit.Tracker,
	tl *timeloc.Service,
	proc *usecase.ActivationProcessor,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.PredictUseCase {
	pc := predict.DefaultConfig()
	if cfg.Predict.AuthThreshold > 0 {
		pc.AuthThreshold = cfg.Predict.AuthThreshold
	}
	if cfg.Predict.SniperOrbDeg > 0 {
		pc.SniperOrbDeg = cfg.Predict.SniperOrbDeg
	}
	pc.Strict = cfg.Predict.Strict
	return usecase.NewPredictUseCase(charts, vim, tracker, tl, proc, m, pc)
}

func ProvideSpecialtyUseCase(
	charts *usecase.ChartUseCase,
	calc *chart.Calculator,
	vim *dasha.Engine,
	sadesati *specialty.SadeSatiScanner,
	tl *timeloc.Service,
	m repository.Metrics,
) *usecase.SpecialtyUseCase {
	return usecase.NewSpecialtyUseCase(charts, calc, vim, sadesati, tl, m)
}

func ProvideAstroHandler(
	logger *applogger.Logger,
	charts *usecase.ChartUseCase,
	dashas *usecase.DashaUseCase,
	calendar *usecase.CalendarUseCase,
	timeline *usecase.TimelineUseCase,
	pred *usecase.PredictUseCase,
	spec *usecase.SpecialtyUseCase,
) *api.AstroHandler {
	return api.NewAstroHandler(logger, charts, dashas, calendar, timeline, pred, spec)
}

func ProvideStreamHandler(logger *applogger.Logger, timeline *usecase.TimelineUseCase) *api.StreamHandler {
	return api.NewStreamHandler(logger, timeline)
}

// ProvideApp assembles the server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	astro *api.AstroHandler,
	stream *api.StreamHandler,
	pipeline *mid.ActivationPipeline,
	proc *usecase.ActivationProcessor,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, logger, astro, stream, pipeline, proc, chClient)
}
