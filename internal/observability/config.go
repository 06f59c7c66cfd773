package observability

import (
	"strings"

	"github.com/smallbiznis/fbrinvoice/internal/config"
	"go.uber.org/zap/zapcore"
)

const defaultServiceName = "fbrinvoice"

// Config is the normalized telemetry view of the application config shared by
// the logger, tracer and meter providers.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  zapcore.Level
	LogFormat string
	// Verbose turns on request/response detail in logs and stack traces on
	// errors. Set by a debug log level or a development environment.
	Verbose bool

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

func LoadConfig(cfg config.Config) Config {
	t := cfg.Telemetry

	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	environment := strings.ToLower(strings.TrimSpace(cfg.Environment))

	level, err := zapcore.ParseLevel(strings.TrimSpace(t.LogLevel))
	if err != nil {
		level = zapcore.InfoLevel
	}

	return Config{
		ServiceName:          serviceName,
		Environment:          environment,
		Version:              strings.TrimSpace(cfg.AppVersion),
		LogLevel:             level,
		LogFormat:            strings.TrimSpace(t.LogFormat),
		Verbose:              level == zapcore.DebugLevel || developmentEnvs[environment],
		OtelEnabled:          t.OtelEnabled,
		OtelExporterEndpoint: strings.TrimSpace(cfg.OTLPEndpoint),
		OtelExporterProtocol: otlpProtocol(t.OtelProtocol),
		OtelSamplingRatio:    clampRatio(t.SamplingRatio),
	}
}

var developmentEnvs = map[string]bool{
	"dev":         true,
	"development": true,
	"local":       true,
	"test":        true,
}

func otlpProtocol(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "http", "http/protobuf":
		return "http"
	default:
		return "grpc"
	}
}

func clampRatio(r float64) float64 {
	switch {
	case r != r || r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
