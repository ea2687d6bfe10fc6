package config

import (
	"fmt"
	"os"
	"presencewatch/internal/core/domain"
	"presencewatch/internal/core/engine"
	"runtime"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// Engine
	Timezone      string
	Location      *time.Location
	FlapThreshold time.Duration
	QueryWorkers  int
	Granularities domain.GranularityTable

	// Storage
	DeviceCSV   string
	JournalPath string

	// MQTT ingestion; disabled when MQTTBroker is empty
	MQTTBroker   string
	MQTTTopic    string
	MQTTUsername string
	MQTTPassword string
	MQTTClientID string
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		Timezone:     getEnv("TIMEZONE", "UTC"),
		DeviceCSV:    getEnv("DEVICE_CSV", ""),
		JournalPath:  getEnv("JOURNAL_PATH", "presence.db"),
		MQTTBroker:   getEnv("MQTT_BROKER", ""),
		MQTTTopic:    getEnv("MQTT_TOPIC", "presence/+/transitions"),
		MQTTUsername: getEnv("MQTT_USERNAME", ""),
		MQTTPassword: getEnv("MQTT_PASSWORD", ""),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "presencewatch-"+uuid.NewString()),
	}

	var err error
	if cfg.FlapThreshold, err = getEnvDuration("FLAP_THRESHOLD", engine.DefaultFlapThreshold); err != nil {
		return nil, err
	}
	if cfg.QueryWorkers, err = getEnvInt("QUERY_WORKERS", runtime.NumCPU()); err != nil {
		return nil, err
	}

	cfg.Granularities = domain.DefaultGranularityTable()
	if path := getEnv("GRANULARITY_TABLE", ""); path != "" {
		table, err := LoadGranularityTable(path)
		if err != nil {
			return nil, err
		}
		cfg.Granularities = table
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values and resolves the time zone.
func (c *Config) Validate() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	c.Location = loc

	if c.FlapThreshold <= 0 {
		return fmt.Errorf("FLAP_THRESHOLD must be positive, got %s", c.FlapThreshold)
	}
	if c.QueryWorkers <= 0 {
		return fmt.Errorf("QUERY_WORKERS must be positive, got %d", c.QueryWorkers)
	}
	return c.Granularities.Validate()
}

// LoadGranularityTable reads a YAML list of {max_days, granularity} rules.
func LoadGranularityTable(path string) (domain.GranularityTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read granularity table: %w", err)
	}

	var table domain.GranularityTable
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse granularity table %s: %w", path, err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("granularity table %s: %w", path, err)
	}
	return table, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns defaultValue only when key is unset; a malformed value
// is an error.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s %q: not an integer", key, value)
	}
	return n, nil
}

// getEnvDuration requires a unit ("90s", "2m"); a bare number is rejected.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", key, value, err)
	}
	return d, nil
}
