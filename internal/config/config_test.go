package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultBroker = "localhost:9092"
	testDataPath  = "testdata/2021.csv"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_PATH", testDataPath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testDataPath, cfg.DataPath)
	assert.Empty(t, cfg.StylePath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.InDelta(t, 640, cfg.ChartWidth, 0)
	assert.InDelta(t, 640, cfg.ChartHeight, 0)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "weather-wheel-frames", cfg.KafkaFrameTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATA_PATH", testDataPath)
	t.Setenv("STYLE_PATH", "style.toml")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CHART_WIDTH", "800")
	t.Setenv("CHART_HEIGHT", "600.5")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_FRAME_TOPIC", "frames")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "style.toml", cfg.StylePath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.InDelta(t, 800, cfg.ChartWidth, 0)
	assert.InDelta(t, 600.5, cfg.ChartHeight, 0)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "frames", cfg.KafkaFrameTopic)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{name: "missing data path", env: map[string]string{"DATA_PATH": ""}, wantMsg: "DATA_PATH"},
		{name: "invalid shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "not-a-duration"}, wantMsg: "SHUTDOWN_TIMEOUT"},
		{name: "negative shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "-1s"}, wantMsg: "SHUTDOWN_TIMEOUT"},
		{name: "zero width", env: map[string]string{"CHART_WIDTH": "0"}, wantMsg: "CHART_WIDTH"},
		{name: "non-numeric height", env: map[string]string{"CHART_HEIGHT": "tall"}, wantMsg: "CHART_HEIGHT"},
		{name: "bad kafka flag", env: map[string]string{"KAFKA_ENABLED": "maybe"}, wantMsg: "KAFKA_ENABLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATA_PATH", testDataPath)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
