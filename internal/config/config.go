package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	CORSAllowedOrigins []string

	OTLPEndpoint string

	Telemetry TelemetryConfig

	DocStore DocStoreConfig

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
	DBMigrate         bool

	ReferenceFile        string
	DocumentNameTemplate string
}

// TelemetryConfig holds the raw logging and OpenTelemetry settings.
type TelemetryConfig struct {
	LogLevel      string
	LogFormat     string
	OtelEnabled   bool
	OtelProtocol  string
	SamplingRatio float64
}

// DocStoreConfig selects and configures the document store backend.
type DocStoreConfig struct {
	Backend    string
	Collection string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirestoreDatabaseID      string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	NodeID int64
}

const (
	BackendFirestore = "firestore"
	BackendSQL       = "sql"
	BackendRedis     = "redis"

	DefaultCollection = "invoices"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:            getenv("APP_SERVICE", "fbrinvoice"),
		AppVersion:         getenv("SERVICE_VERSION", getenv("APP_VERSION", "0.1.0")),
		Environment:        getenv("DEPLOYMENT_ENV", getenv("ENVIRONMENT", "development")),
		HTTPAddr:           getenv("HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "")),
		OTLPEndpoint:       getenv("OTEL_EXPORTER_OTLP_ENDPOINT", getenv("OTLP_ENDPOINT", "localhost:4317")),
		Telemetry: TelemetryConfig{
			LogLevel:      getenv("LOG_LEVEL", "info"),
			LogFormat:     getenv("LOG_FORMAT", "json"),
			OtelEnabled:   getenvBool("OTEL_ENABLED", false),
			OtelProtocol:  getenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")),
			SamplingRatio: getenvFloat("OTEL_SAMPLING_RATIO", 0.1),
		},
		DocStore: DocStoreConfig{
			Backend:                  normalizeBackend(getenv("DOCSTORE_BACKEND", BackendFirestore)),
			Collection:               strings.TrimSpace(getenv("DOCSTORE_COLLECTION", DefaultCollection)),
			FirestoreProjectID:       strings.TrimSpace(getenv("FIRESTORE_PROJECT_ID", getenv("GOOGLE_CLOUD_PROJECT", ""))),
			FirestoreCredentialsFile: strings.TrimSpace(getenv("GOOGLE_APPLICATION_CREDENTIALS", "")),
			FirestoreDatabaseID:      strings.TrimSpace(getenv("FIRESTORE_DATABASE_ID", "")),
			RedisAddr:                getenv("REDIS_ADDR", "localhost:6379"),
			RedisPassword:            getenv("REDIS_PASSWORD", ""),
			RedisDB:                  getenvInt("REDIS_DB", 0),
			RedisKeyPrefix:           getenv("REDIS_KEY_PREFIX", "fbrinvoice"),
			NodeID:                   getenvInt64("NODE_ID", 1),
		},
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "fbrinvoice"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 1800),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 300),
		DBMigrate:         getenvBool("DATABASE_MIGRATE", true),
		ReferenceFile:     strings.TrimSpace(getenv("REFERENCE_FILE", "")),

		DocumentNameTemplate: strings.TrimSpace(getenv("DOCUMENT_NAME_TEMPLATE", "")),
	}
	if cfg.DocStore.Collection == "" {
		cfg.DocStore.Collection = DefaultCollection
	}

	return cfg
}

func normalizeBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case BackendSQL, "postgres", "mysql", "sqlite":
		return BackendSQL
	case BackendRedis:
		return BackendRedis
	default:
		return BackendFirestore
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
