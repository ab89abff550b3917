package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalYAML = `
environment: test
server:
  port: 8080
`

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatal(err)
	}

	if c.Ephemeris.MinYear != 1800 || c.Ephemeris.MaxYear != 2200 {
		t.Fatalf("ephemeris range = %d..%d", c.Ephemeris.MinYear, c.Ephemeris.MaxYear)
	}
	if c.Dasha.KalachakraManushyaRule != "pada" {
		t.Fatalf("kalachakra rule = %q", c.Dasha.KalachakraManushyaRule)
	}
	if c.Scan.MaxRangeDays != 18263 || c.Scan.FastOrbDeg != 1 || c.Scan.SlowOrbDeg != 3 {
		t.Fatalf("scan defaults = %+v", c.Scan)
	}
	if c.Predict.AuthThreshold != 15 || c.Predict.SniperOrbDeg != 0.20 {
		t.Fatalf("predict defaults = %+v", c.Predict)
	}
	if c.Cache.ChartTTL != 24*time.Hour || c.Cache.CalendarCap != 100 {
		t.Fatalf("cache defaults = %+v", c.Cache)
	}
	if c.Backend.Type != "none" {
		t.Fatalf("backend = %q, want none", c.Backend.Type)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	c, err := Load(writeConfig(t, `
environment: production
scan:
  max_range_days: 3650
  max_rps: 50
backend:
  type: clickhouse
clickhouse:
  host: ch.internal
  port: 9000
`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Scan.MaxRangeDays != 3650 || c.Scan.MaxRPS != 50 {
		t.Fatalf("scan = %+v", c.Scan)
	}
	if c.Backend.Type != "clickhouse" || c.ClickHouse.Host != "ch.internal" {
		t.Fatalf("backend = %q host = %q", c.Backend.Type, c.ClickHouse.Host)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		frag string
	}{
		{
			"missing environment",
			`server: {port: 8080}`,
			"environment",
		},
		{
			"bad backend",
			"environment: test\nbackend:\n  type: sqs\n",
			"backend.type",
		},
		{
			"bad kalachakra rule",
			"environment: test\ndasha:\n  kalachakra_manushya_rule: forward\n",
			"kalachakra",
		},
		{
			"inverted ephemeris range",
			"environment: test\nephemeris:\n  min_year: 2200\n  max_year: 1800\n",
			"inverted",
		},
		{
			"kafka without brokers",
			"environment: test\nbackend:\n  type: kafka\n",
			"brokers",
		},
	}
	for _, tc := range cases {
		_, err := Load(writeConfig(t, tc.yaml))
		if err == nil {
			t.Fatalf("%s: want error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.frag) {
			t.Fatalf("%s: err = %v, want mention of %q", tc.name, err, tc.frag)
		}
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("BACKEND", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SCAN_MAX_RANGE_DAYS", "7300")

	c, err := LoadWithEnv(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatal(err)
	}
	if c.Backend.Type != "kafka" {
		t.Fatalf("backend = %q", c.Backend.Type)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.Brokers[0] != "k1:9092" {
		t.Fatalf("brokers = %v", c.Kafka.Brokers)
	}
	if !c.Cache.Redis.Enabled || c.Cache.Redis.Addr != "redis:6379" {
		t.Fatalf("redis = %+v", c.Cache.Redis)
	}
	if c.Scan.MaxRangeDays != 7300 {
		t.Fatalf("max range = %v", c.Scan.MaxRangeDays)
	}
}
