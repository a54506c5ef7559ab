package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// EnvPrefix: префикс переменных окружения сервиса.
const EnvPrefix = "BURGER"

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr       string        `envconfig:"HTTP_ADDR"`
	MetricsAddr    string        `envconfig:"METRICS_ADDR"`
	GRPCAddr       string        `envconfig:"GRPC_ADDR"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`

	StorageDriver       string `envconfig:"STORAGE_DRIVER"`
	PostgresDSN         string `envconfig:"POSTGRES_DSN"`
	PostgresAutoMigrate bool   `envconfig:"POSTGRES_AUTO_MIGRATE"`

	UploadDir string `envconfig:"UPLOAD_DIR"`
	// ReplaceProductImage удаляет прежнее изображение товара при замене, как у категорий.
	ReplaceProductImage bool `envconfig:"REPLACE_PRODUCT_IMAGE"`

	JWTSecret  string        `envconfig:"JWT_SECRET"`
	JWTTTL     time.Duration `envconfig:"JWT_TTL"`
	BcryptCost int           `envconfig:"BCRYPT_COST"`

	// KafkaBrokers: список брокеров через запятую; пустое значение включает LogPublisher.
	KafkaBrokers      string `envconfig:"KAFKA_BROKERS"`
	KafkaClientID     string `envconfig:"KAFKA_CLIENT_ID"`
	KafkaCatalogTopic string `envconfig:"KAFKA_CATALOG_TOPIC"`
	KafkaOrderTopic   string `envconfig:"KAFKA_ORDER_TOPIC"`
	KafkaDLQTopic     string `envconfig:"KAFKA_DLQ_TOPIC"`

	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL"`
	OutboxBatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE"`
	OutboxMaxAttempts  int           `envconfig:"OUTBOX_MAX_ATTEMPTS"`
	OutboxRetryDelay   time.Duration `envconfig:"OUTBOX_RETRY_DELAY"`
}

// DefaultConfig возвращает значения для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":3001",
		MetricsAddr:         ":9090",
		GRPCAddr:            ":50051",
		RequestTimeout:      30 * time.Second,
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		UploadDir:           "uploads",
		JWTTTL:              5 * 24 * time.Hour,
		KafkaClientID:       "burger-oms",
		OutboxPollInterval:  time.Second,
		OutboxBatchSize:     100,
		OutboxMaxAttempts:   3,
		OutboxRetryDelay:    50 * time.Millisecond,
	}
}

// LoadConfig читает .env (если есть) и переменные окружения BURGER_* поверх DefaultConfig.
func LoadConfig(logger *log.Entry, envFiles ...string) (Config, error) {
	if logger == nil {
		logger = log.WithField("component", "config")
	}

	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	} else {
		logger.Info("loaded configuration from .env file")
	}

	cfg := DefaultConfig()
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	switch {
	case c.HTTPAddr == "":
		return errors.New("http address is required")
	case strings.TrimSpace(c.JWTSecret) == "":
		return fmt.Errorf("%s_JWT_SECRET is required", EnvPrefix)
	case c.JWTTTL <= 0:
		return errors.New("jwt ttl must be positive")
	case c.StorageDriver == StorageDriverPostgres && strings.TrimSpace(c.PostgresDSN) == "":
		return fmt.Errorf("%s_POSTGRES_DSN is required for postgres storage", EnvPrefix)
	}
	return nil
}

func (c Config) kafkaBrokers() []string {
	var brokers []string
	for _, broker := range strings.Split(c.KafkaBrokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
