package observability

import (
	"math"
	"testing"

	"github.com/smallbiznis/fbrinvoice/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppName:      " ",
		Environment:  " Production ",
		AppVersion:   "1.2.3",
		OTLPEndpoint: "collector:4317",
		Telemetry:    config.TelemetryConfig{LogLevel: "bogus", OtelProtocol: "HTTP/protobuf", SamplingRatio: 0.25},
	})

	assert.Equal(t, "fbrinvoice", cfg.ServiceName)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.Equal(t, "collector:4317", cfg.OtelExporterEndpoint)
	assert.Equal(t, 0.25, cfg.OtelSamplingRatio)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigVerbose(t *testing.T) {
	cases := []struct {
		name string
		env  string
		lvl  string
		want bool
	}{
		{name: "local env", env: "local", lvl: "info", want: true},
		{name: "debug level", env: "production", lvl: "DEBUG", want: true},
		{name: "staging", env: "staging", lvl: "info", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := LoadConfig(config.Config{
				Environment: tc.env,
				Telemetry:   config.TelemetryConfig{LogLevel: tc.lvl},
			})
			assert.Equal(t, tc.want, cfg.Verbose)
		})
	}
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 1.0, clampRatio(3))
	assert.Equal(t, 0.0, clampRatio(math.NaN()))
	assert.Equal(t, 0.5, clampRatio(0.5))
}
