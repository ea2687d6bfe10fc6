package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"presencewatch/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "TIMEZONE", "FLAP_THRESHOLD", "QUERY_WORKERS", "GRANULARITY_TABLE", "MQTT_BROKER", "MQTT_CLIENT_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Minute, cfg.FlapThreshold)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, domain.DefaultGranularityTable(), cfg.Granularities)
	assert.Empty(t, cfg.MQTTBroker)
	assert.Contains(t, cfg.MQTTClientID, "presencewatch-")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TIMEZONE", "Europe/Istanbul")
	t.Setenv("FLAP_THRESHOLD", "90s")
	t.Setenv("QUERY_WORKERS", "3")
	t.Setenv("GRANULARITY_TABLE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "Europe/Istanbul", cfg.Location.String())
	assert.Equal(t, 90*time.Second, cfg.FlapThreshold)
	assert.Equal(t, 3, cfg.QueryWorkers)
}

func TestLoad_UnknownTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")
	t.Setenv("GRANULARITY_TABLE", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadGranularityTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "granularity.yaml")
	content := "- max_days: 2\n  granularity: hour\n- max_days: 0\n  granularity: day\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := LoadGranularityTable(path)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, domain.Hourly, table.Select(2))
	assert.Equal(t, domain.Daily, table.Select(3))
}

func TestLoadGranularityTable_InvalidGranularity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "granularity.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- max_days: 2\n  granularity: minute\n"), 0o600))

	_, err := LoadGranularityTable(path)
	assert.Error(t, err)
}

func TestLoad_MalformedNumbersAreRejected(t *testing.T) {
	cases := map[string]map[string]string{
		"threshold without unit": {"FLAP_THRESHOLD": "90", "QUERY_WORKERS": ""},
		"threshold garbage":      {"FLAP_THRESHOLD": "soon", "QUERY_WORKERS": ""},
		"workers not a number":   {"FLAP_THRESHOLD": "", "QUERY_WORKERS": "four"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("TIMEZONE", "UTC")
			t.Setenv("GRANULARITY_TABLE", "")
			for key, value := range env {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_ZeroThresholdFailsValidation(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("GRANULARITY_TABLE", "")
	t.Setenv("QUERY_WORKERS", "")
	t.Setenv("FLAP_THRESHOLD", "0s")

	_, err := Load()
	assert.ErrorContains(t, err, "FLAP_THRESHOLD")
}
