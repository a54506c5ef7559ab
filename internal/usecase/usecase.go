// Пакет usecase содержит бизнес-операции сервиса: проверку входа,
// ссылочную целостность между сущностями, запись и компенсации.
//
// Каждая операция выполняется строго последовательно: наличие входа →
// форма → ссылки в фиксированном порядке → запись → (иногда) компенсация.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// options: общие необязательные настройки use case'ов.
type options struct {
	logger                 *log.Entry
	outbox                 domain.OutboxRepository
	cleanupSupersededImage bool
}

// Option настраивает use case.
type Option func(*options)

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOutbox включает запись доменных событий в outbox после успешной записи.
func WithOutbox(outbox domain.OutboxRepository) Option {
	return func(o *options) {
		o.outbox = outbox
	}
}

// WithSupersededImageCleanup заставляет UpdateProduct удалять заменённое изображение,
// как это делает UpdateCategory. По умолчанию выключено.
func WithSupersededImageCleanup() Option {
	return func(o *options) {
		o.cleanupSupersededImage = true
	}
}

func buildOptions(name string, opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.WithField("component", "usecase")
	}
	o.logger = o.logger.WithField("usecase", name)
	return o
}

// lookupError переводит ошибку поиска ссылки в пользовательскую, если это возможно.
// notFound: sentinel, который хранилище возвращает для отсутствующей записи.
func lookupError(err, notFound error, what, id string) error {
	switch {
	case errors.Is(err, notFound):
		return domain.WithReference(notFound, id)
	case errors.Is(err, domain.ErrMalformedID):
		return domain.WithReference(domain.ErrInvalidInput, id)
	default:
		return fmt.Errorf("find %s %s: %w", what, id, err)
	}
}

// logFailure пишет ошибку с уровнем, зависящим от её класса.
func logFailure(logger *log.Entry, err error, fields log.Fields) {
	entry := logger.WithError(err).WithFields(fields).WithField("kind", domain.KindOf(err))
	if domain.IsClientError(err) {
		entry.Warn("use case rejected input")
		return
	}
	entry.Error("use case failed")
}

// removeUpload: best-effort удаление файла; ошибка только логируется.
func removeUpload(ctx context.Context, remover domain.UploadRemover, logger *log.Entry, key, reason string) {
	if key == "" {
		return
	}
	// Компенсация должна отработать даже после отмены запроса.
	if err := remover.Remove(context.WithoutCancel(ctx), key); err != nil {
		logger.WithError(err).WithFields(log.Fields{
			"image_path": key,
			"reason":     reason,
		}).Warn("failed to remove upload")
		return
	}
	logger.WithFields(log.Fields{
		"image_path": key,
		"reason":     reason,
	}).Debug("upload removed")
}

// uploadCleanup удаляет только что загруженный файл, если операция завершилась ошибкой.
type uploadCleanup struct {
	remover domain.UploadRemover
	logger  *log.Entry
	key     string
}

func (c uploadCleanup) onFailure(ctx context.Context, err error) {
	if err == nil || c.key == "" {
		return
	}
	removeUpload(ctx, c.remover, c.logger, c.key, "orphaned by failed "+string(domain.KindOf(err)))
}

// recordEvent кладёт событие в outbox. Ошибка не влияет на результат операции.
func recordEvent(ctx context.Context, o options, aggregateType, aggregateID, eventType string, payload any) {
	if o.outbox == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		o.logger.WithError(err).WithField("event_type", eventType).Warn("failed to encode domain event")
		return
	}

	if _, err := o.outbox.Enqueue(ctx, domain.OutboxMessage{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       body,
	}); err != nil {
		o.logger.WithError(err).WithFields(log.Fields{
			"event_type":   eventType,
			"aggregate_id": aggregateID,
		}).Warn("failed to enqueue domain event")
	}
}
