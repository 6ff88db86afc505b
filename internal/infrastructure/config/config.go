package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPPort      int
	GRPCPort      int
	DB            DBConfig
	Kafka         KafkaConfig
	Telemetry     TelemetryConfig
	Classifier    ClassifierConfig
	Outbox        OutboxConfig
	RulesPath     string
	LogLevel      string
	LogFormat     string
	HTTPRateLimit float64
	HTTPRateBurst int
}

// DBConfig holds database connection parameters.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// KafkaConfig holds broker and topic configuration. IntakeTopic is optional:
// when empty, the background profile intake consumer is not started.
type KafkaConfig struct {
	Brokers       []string
	AnalysesTopic string
	IntakeTopic   string
	IntakeGroup   string
}

// TelemetryConfig holds OpenTelemetry configuration.
type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// ClassifierConfig controls the optional bio language classifier. When
// disabled, scoring is rules-only.
type ClassifierConfig struct {
	Threshold float64
	Enabled   bool
}

// OutboxConfig controls the event relay that drains staged outbox rows.
type OutboxConfig struct {
	RelayInterval  time.Duration
	RelayBatchSize int
}

// Validate checks required configuration values.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "deepxcheck"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "deepxcheck"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),
		},
		Kafka: KafkaConfig{
			Brokers:       []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			AnalysesTopic: getEnv("KAFKA_ANALYSES_TOPIC", "deepxcheck.analyses"),
			IntakeTopic:   getEnv("KAFKA_INTAKE_TOPIC", ""),
			IntakeGroup:   getEnv("KAFKA_INTAKE_GROUP", "deepxcheck-intake"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  "deepxcheck",
		},
		Classifier: ClassifierConfig{
			Threshold: getEnvFloat("CLASSIFIER_THRESHOLD", 0.75),
			Enabled:   getEnvBool("CLASSIFIER_ENABLED", true),
		},
		Outbox: OutboxConfig{
			RelayInterval:  getEnvDuration("OUTBOX_RELAY_INTERVAL", time.Second),
			RelayBatchSize: getEnvInt("OUTBOX_RELAY_BATCH", 100),
		},
		RulesPath:     getEnv("DEEPXCHECK_RULES", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		HTTPRateLimit: getEnvFloat("HTTP_RATE_LIMIT", 50),
		HTTPRateBurst: getEnvInt("HTTP_RATE_BURST", 100),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
