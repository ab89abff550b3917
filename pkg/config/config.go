package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Ephemeris struct {
		DataDir       string  `yaml:"data_dir"` // VSOP87 data files
		MinYear       int     `yaml:"min_year"`
		MaxYear       int     `yaml:"max_year"`
		AyanamsaJ2000 float64 `yaml:"ayanamsa_j2000"` // degrees; 0 = Lahiri default
		// CalendarCorrectionDeg shifts nakshatra calendar crossings only.
		CalendarCorrectionDeg float64 `yaml:"calendar_correction_deg"`
	} `yaml:"ephemeris"`
	Dasha struct {
		KalachakraManushyaRule string `yaml:"kalachakra_manushya_rule"` // pada | reverse
	} `yaml:"dasha"`
	Scan struct {
		MaxRangeDays float64 `yaml:"max_range_days"`
		FastOrbDeg   float64 `yaml:"fast_orb_deg"`
		SlowOrbDeg   float64 `yaml:"slow_orb_deg"`
		BufferSize   int     `yaml:"buffer_size"`
		MaxRPS       int     `yaml:"max_rps"`
	} `yaml:"scan"`
	Predict struct {
		AuthThreshold int     `yaml:"auth_threshold"`
		SniperOrbDeg  float64 `yaml:"sniper_orb_deg"`
		Strict        bool    `yaml:"strict"`
	} `yaml:"predict"`
	Backend struct {
		Type string `yaml:"type"` // kafka | clickhouse | none
	} `yaml:"backend"`
	Kafka struct {
		Brokers         []string `yaml:"brokers"`
		ActivationTopic string   `yaml:"activation_topic"`
		EventTopic      string   `yaml:"event_topic"`
		LogTopic        string   `yaml:"log_topic"` // empty disables aggregated error-log publishing
		RequiredAcks    int      `yaml:"required_acks"`
		Compression     string   `yaml:"compression"`
		Producer        struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Cache struct {
		ChartTTL    time.Duration `yaml:"chart_ttl"`
		DashaTTL    time.Duration `yaml:"dasha_ttl"`
		CalendarCap int           `yaml:"calendar_cap"` // LRU entries
		Redis       struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("EPHEMERIS_DATA_DIR"); v != "" {
		c.Ephemeris.DataDir = v
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_ACTIVATION_TOPIC"); v != "" {
		c.Kafka.ActivationTopic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("SCAN_MAX_RANGE_DAYS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Scan.MaxRangeDays = f
		}
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Ephemeris.MinYear == 0 {
		c.Ephemeris.MinYear = 1800
	}
	if c.Ephemeris.MaxYear == 0 {
		c.Ephemeris.MaxYear = 2200
	}
	if c.Dasha.KalachakraManushyaRule == "" {
		c.Dasha.KalachakraManushyaRule = "pada"
	}
	if c.Scan.MaxRangeDays == 0 {
		c.Scan.MaxRangeDays = 18263
	}
	if c.Scan.FastOrbDeg == 0 {
		c.Scan.FastOrbDeg = 1
	}
	if c.Scan.SlowOrbDeg == 0 {
		c.Scan.SlowOrbDeg = 3
	}
	if c.Scan.BufferSize == 0 {
		c.Scan.BufferSize = 1024
	}
	if c.Scan.MaxRPS == 0 {
		c.Scan.MaxRPS = 200
	}
	if c.Predict.AuthThreshold == 0 {
		c.Predict.AuthThreshold = 15
	}
	if c.Predict.SniperOrbDeg == 0 {
		c.Predict.SniperOrbDeg = 0.20
	}
	if c.Cache.ChartTTL == 0 {
		c.Cache.ChartTTL = 24 * time.Hour
	}
	if c.Cache.DashaTTL == 0 {
		c.Cache.DashaTTL = time.Hour
	}
	if c.Cache.CalendarCap == 0 {
		c.Cache.CalendarCap = 100
	}
	if c.Backend.Type == "" {
		c.Backend.Type = "none"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Backend.Type {
	case "kafka", "clickhouse", "none":
	default:
		return fmt.Errorf("backend.type must be 'kafka', 'clickhouse' or 'none', got '%s'", c.Backend.Type)
	}
	switch c.Dasha.KalachakraManushyaRule {
	case "pada", "reverse":
	default:
		return fmt.Errorf("dasha.kalachakra_manushya_rule must be 'pada' or 'reverse', got '%s'", c.Dasha.KalachakraManushyaRule)
	}
	if c.Ephemeris.MinYear >= c.Ephemeris.MaxYear {
		return fmt.Errorf("ephemeris year range is inverted")
	}
	if c.Backend.Type == "kafka" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when backend.type is kafka")
	}
	return nil
}
