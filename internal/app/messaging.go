package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/burger-oms/internal/service/outbox"
)

// publishers: куда outbox worker отправляет события.
type publishers struct {
	events     domain.OutboxPublisher
	deadLetter outbox.DeadLetterPublisher
	producer   *kafka.Producer
}

// initPublishers подключает Kafka, если брокеры заданы; иначе события пишутся в лог.
func initPublishers(cfg Config, logger *log.Entry) (publishers, error) {
	brokers := cfg.kafkaBrokers()
	if len(brokers) == 0 {
		logger.Info("kafka brokers are not configured, domain events go to log")
		return publishers{events: outbox.NewLogPublisher(logger.WithField("component", "outbox-log-publisher"))}, nil
	}

	producer, err := kafka.NewProducer(brokers, cfg.KafkaClientID)
	if err != nil {
		return publishers{}, err
	}
	logger.WithField("brokers", brokers).Info("kafka producer initialized")

	topics := kafka.Topics{
		Catalog:    cfg.KafkaCatalogTopic,
		Order:      cfg.KafkaOrderTopic,
		DeadLetter: cfg.KafkaDLQTopic,
	}
	return publishers{
		events:     kafka.NewOutboxPublisher(producer, topics),
		deadLetter: kafka.NewDeadLetterPublisher(producer, topics),
		producer:   producer,
	}, nil
}

func (p publishers) close(logger *log.Entry) {
	if p.producer == nil {
		return
	}
	if err := p.producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
		return
	}
	logger.Info("kafka producer closed")
}
