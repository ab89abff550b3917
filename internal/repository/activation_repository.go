package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"Jyotish/internal/domain/models"
	"Jyotish/internal/domain/repository"
	pkgkafka "Jyotish/pkg/kafka"
)

// jdToTime converts a JD to a wall-clock timestamp for the archive.
func jdToTime(jd float64) time.Time {
	const unixEpochJD = 2440587.5
	sec := (jd - unixEpochJD) * 86400
	return time.Unix(int64(sec), 0).UTC()
}

// ClickHouseArchive implements Archive over the columnar sink. Rows carry
// the birth hash and the activation fields only, never birth data.
type ClickHouseArchive struct {
	db    *sql.DB
	table string
}

// NewClickHouseArchive creates the activation archive.
func NewClickHouseArchive(db *sql.DB, table string) repository.Archive {
	return &ClickHouseArchive{db: db, table: table}
}

// Schema returns the DDL statements the archive needs.
func (s *ClickHouseArchive) Schema() []string {
	return []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		ts DateTime,
		jd Float64,
		birth_hash FixedString(64),
		kind LowCardinality(String),
		planet LowCardinality(String),
		natal_target String,
		target_house UInt8,
		sign UInt8,
		gap_degrees Float64,
		strength Float64,
		impact LowCardinality(String)
	) ENGINE = MergeTree() ORDER BY (birth_hash, jd, kind)`, s.table)}
}

func (s *ClickHouseArchive) Init(ctx context.Context) error {
	for _, stmt := range s.Schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("archive init: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseArchive) StoreBatch(ctx context.Context, birthHash string, as []models.Activation) error {
	if len(as) == 0 {
		return nil
	}
	// Multi-row VALUES insert, chunked to bound statement size.
	const chunkSize = 2000
	for start := 0; start < len(as); start += chunkSize {
		end := start + chunkSize
		if end > len(as) {
			end = len(as)
		}
		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*11)
		for _, a := range as[start:end] {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				jdToTime(a.JD),
				a.JD,
				birthHash,
				string(a.Kind),
				a.Planet.String(),
				a.NatalTarget,
				uint8(a.TargetHouse),
				uint8(a.Sign),
				a.Gap,
				a.Strength,
				string(a.Impact),
			)
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, jd, birth_hash, kind, planet, natal_target, target_house, sign, gap_degrees, strength, impact) VALUES %s",
			s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseArchive) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseArchive) Close() error {
	return nil // Managed by pkg
}

// KafkaPublisher implements Publisher for the downstream advice workers.
type KafkaPublisher struct {
	producer        *pkgkafka.Producer
	activationTopic string
	eventTopic      string
}

// NewKafkaPublisher creates the Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, activationTopic, eventTopic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, activationTopic: activationTopic, eventTopic: eventTopic}
}

func activationValue(birthHash string, a *models.Activation) map[string]interface{} {
	return map[string]interface{}{
		"birth_hash":   birthHash,
		"jd":           a.JD,
		"kind":         a.Kind,
		"planet":       a.Planet.String(),
		"natal_target": a.NatalTarget,
		"target_house": a.TargetHouse,
		"gap_degrees":  a.Gap,
		"strength":     a.Strength,
		"impact":       a.Impact,
	}
}

func (p *KafkaPublisher) PublishActivation(ctx context.Context, birthHash string, a *models.Activation) error {
	return p.producer.Publish(ctx, p.activationTopic, []byte(birthHash), activationValue(birthHash, a))
}

func (p *KafkaPublisher) PublishActivationBatch(ctx context.Context, birthHash string, as []models.Activation) error {
	if len(as) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(as))
	for i := range as {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(birthHash),
			Value: activationValue(birthHash, &as[i]),
		}
	}
	return p.producer.PublishBatch(ctx, p.activationTopic, msgs)
}

func (p *KafkaPublisher) PublishEvent(ctx context.Context, birthHash string, e *models.PredictedEvent) error {
	return p.producer.Publish(ctx, p.eventTopic, []byte(birthHash), map[string]interface{}{
		"birth_hash":  birthHash,
		"type":        e.Type,
		"house":       e.House,
		"start_jd":    e.StartJD,
		"peak_jd":     e.PeakJD,
		"end_jd":      e.EndJD,
		"probability": e.Probability,
		"tier":        e.Tier,
		"quality":     e.Quality,
	})
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
