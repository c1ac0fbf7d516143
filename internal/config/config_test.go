package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/field_book.csv", cfg.FieldBookPath)
	assert.Equal(t, "data/raw", cfg.RawDataDir)
	assert.Equal(t, "data/anl", cfg.OutputDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FIELD_BOOK_PATH", "/srv/sonde/field_book.csv")
	t.Setenv("RAW_DATA_DIR", "/srv/sonde/raw")
	t.Setenv("OUTPUT_DIR", "/srv/sonde/anl")
	t.Setenv("WORKERS", "8")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "qc-records")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/sonde/field_book.csv", cfg.FieldBookPath)
	assert.Equal(t, "/srv/sonde/raw", cfg.RawDataDir)
	assert.Equal(t, "/srv/sonde/anl", cfg.OutputDir)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "qc-records", cfg.KafkaSinkTopic)
}

func TestKafkaDisabledOverride(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-1:9092")
	t.Setenv("KAFKA_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero workers", "WORKERS", "0"},
		{"non-numeric workers", "WORKERS", "many"},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "soon"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateKafkaConsistency(t *testing.T) {
	cfg := &Config{
		FieldBookPath: "fb.csv",
		RawDataDir:    "raw",
		OutputDir:     "anl",
		Workers:       1,
		KafkaEnabled:  true,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
