package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Gateway    GatewayConfig
	Window     WindowConfig
	Validation ValidationConfig
	Notify     NotifyConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
}

type StorageConfig struct {
	TransactionsTable string
	BatchesTable      string
	AuditTable        string
}

// GatewayConfig points at the national settlement interface gateway.
type GatewayConfig struct {
	BaseURL            string
	APIKey             string
	TransactionTimeout time.Duration
	BatchTimeout       time.Duration
}

// WindowConfig holds the RTGS operating window. Defaults: 09:00-16:30 with a
// 16:00 same-day cutoff, +30m expected settlement, next-day opening at 10:00.
type WindowConfig struct {
	StartHour       int
	EndHour         int
	EndMinute       int
	CutoffHour      int
	CutoffMinute    int
	SettlementDelay time.Duration
	NextDayHour     int
}

type ValidationConfig struct {
	MinAmount int64
	MaxAmount int64
}

type NotifyConfig struct {
	QueueURL string
}

type LoggingConfig struct {
	Level string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("HTTP_PORT", "8080"),
			Host:            getEnv("HTTP_HOST", "0.0.0.0"),
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			TransactionsTable: getEnv("DYNAMODB_TRANSACTIONS_TABLE_NAME", ""),
			BatchesTable:      getEnv("DYNAMODB_BATCHES_TABLE_NAME", ""),
			AuditTable:        getEnv("DYNAMODB_AUDIT_TABLE_NAME", ""),
		},
		Gateway: GatewayConfig{
			BaseURL:            getEnv("RTGS_GATEWAY_URL", ""),
			APIKey:             getEnv("RTGS_GATEWAY_API_KEY", ""),
			TransactionTimeout: getDurationEnv("RTGS_TRANSACTION_TIMEOUT", 30*time.Second),
			BatchTimeout:       getDurationEnv("RTGS_BATCH_TIMEOUT", 60*time.Second),
		},
		Window: WindowConfig{
			StartHour:       getIntEnv("RTGS_WINDOW_START_HOUR", 9),
			EndHour:         getIntEnv("RTGS_WINDOW_END_HOUR", 16),
			EndMinute:       getIntEnv("RTGS_WINDOW_END_MINUTE", 30),
			CutoffHour:      getIntEnv("RTGS_CUTOFF_HOUR", 16),
			CutoffMinute:    getIntEnv("RTGS_CUTOFF_MINUTE", 0),
			SettlementDelay: getDurationEnv("RTGS_SETTLEMENT_DELAY", 30*time.Minute),
			NextDayHour:     getIntEnv("RTGS_NEXT_DAY_HOUR", 10),
		},
		Validation: ValidationConfig{
			MinAmount: getInt64Env("RTGS_MIN_AMOUNT", 200_000),
			MaxAmount: getInt64Env("RTGS_MAX_AMOUNT", 100_000_000),
		},
		Notify: NotifyConfig{
			QueueURL: getEnv("SQS_NOTIFICATIONS_QUEUE_URL", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

func getInt64Env(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}
