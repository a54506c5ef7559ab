package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/metrics"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
)

func categoryEvent(id string) domain.OutboxMessage {
	return domain.OutboxMessage{
		ID:            id,
		AggregateType: domain.AggregateCategory,
		AggregateID:   "cat-" + id,
		EventType:     domain.EventCategoryCreated,
		Payload:       []byte(`{"name":"Burgers"}`),
	}
}

func TestWorker_ProcessOnce_MarkSent(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{pending: []domain.OutboxMessage{categoryEvent("msg-1")}}
	publisher := &stubPublisher{}

	worker := NewWorker(repo, publisher, WithRetryBaseDelay(0), WithMaxAttempts(3))

	sent := worker.ProcessOnce(context.Background())

	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"msg-1"}, repo.sentIDs)
	assert.Empty(t, repo.failedIDs)
	assert.Equal(t, 1, publisher.calls())
}

func TestWorker_ProcessOnce_MarkFailedAndDLQAfterRetries(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{pending: []domain.OutboxMessage{categoryEvent("msg-2")}}
	publisher := &stubPublisher{err: errors.New("publish failed")}
	deadLetter := &stubDeadLetter{}
	reg := prometheus.NewRegistry()
	m := metrics.NewOutboxMetrics(reg)

	worker := NewWorker(
		repo,
		publisher,
		WithDeadLetter(deadLetter),
		WithMetrics(m),
		WithRetryBaseDelay(0),
		WithMaxAttempts(3),
	)

	sent := worker.ProcessOnce(context.Background())

	assert.Zero(t, sent)
	assert.Equal(t, 3, publisher.calls())
	assert.Empty(t, repo.sentIDs)
	assert.Equal(t, []string{"msg-2"}, repo.failedIDs)
	require.Len(t, deadLetter.causes, 1)
	assert.ErrorIs(t, deadLetter.causes[0], domain.ErrOutboxPublish)

	count, err := testutil.GatherAndCount(reg, "burger_outbox_publish_attempts_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "retry_error and failed series")
}

func TestWorker_ProcessOnce_DeadLetterFailureStillMarksFailed(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{pending: []domain.OutboxMessage{categoryEvent("msg-4")}}
	publisher := &stubPublisher{err: errors.New("publish failed")}
	deadLetter := &stubDeadLetter{err: errors.New("dlq down")}

	worker := NewWorker(repo, publisher, WithDeadLetter(deadLetter), WithRetryBaseDelay(0), WithMaxAttempts(1))
	worker.ProcessOnce(context.Background())

	assert.Equal(t, []string{"msg-4"}, repo.failedIDs)
}

func TestWorker_ProcessOnce_SuccessAfterRetry(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{pending: []domain.OutboxMessage{categoryEvent("msg-3")}}
	publisher := &stubPublisher{
		sequenceErrors: []error{errors.New("attempt 1"), errors.New("attempt 2"), nil},
	}

	worker := NewWorker(repo, publisher, WithRetryBaseDelay(0), WithMaxAttempts(3))
	worker.ProcessOnce(context.Background())

	assert.Equal(t, 3, publisher.calls())
	assert.Equal(t, []string{"msg-3"}, repo.sentIDs)
	assert.Empty(t, repo.failedIDs)
}

func TestWorker_ProcessOnce_MemoryRepositoryDrainsBacklog(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewOutboxRepository()
	for _, id := range []string{"a", "b", "c"} {
		_, err := repo.Enqueue(ctx, categoryEvent(id))
		require.NoError(t, err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.NewOutboxMetrics(reg)
	publisher := &stubPublisher{}
	worker := NewWorker(repo, publisher, WithMetrics(m), WithBatchSize(2), WithRetryBaseDelay(0))

	assert.Equal(t, 2, worker.ProcessOnce(ctx))
	assert.Len(t, repo.AllPending(), 1)
	assert.Equal(t, 1, worker.ProcessOnce(ctx))
	assert.Empty(t, repo.AllPending())
	assert.Zero(t, worker.ProcessOnce(ctx))
	assert.Equal(t, 3, publisher.calls())
}

func TestWorker_ProcessOnce_CanceledContext(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{pending: []domain.OutboxMessage{categoryEvent("msg-5")}}
	publisher := &stubPublisher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	worker := NewWorker(repo, publisher)

	assert.Zero(t, worker.ProcessOnce(ctx))
	assert.Zero(t, publisher.calls())
}

func TestWorker_RetryBackoff(t *testing.T) {
	t.Parallel()

	worker := NewWorker(nil, nil, WithRetryBaseDelay(10*time.Millisecond))

	assert.Equal(t, 10*time.Millisecond, worker.retryBackoff(1))
	assert.Equal(t, 20*time.Millisecond, worker.retryBackoff(2))
	assert.Equal(t, 40*time.Millisecond, worker.retryBackoff(3))
}

func TestWorker_Run_DisabledWithoutPublisher(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	worker := NewWorker(&stubOutboxRepo{}, nil, WithLogger(log.NewEntry(logger)))

	worker.Run(context.Background())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
}

func TestWorker_Run_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	worker := NewWorker(
		&stubOutboxRepo{},
		&stubPublisher{},
		WithPollInterval(5*time.Millisecond),
		WithRetryBaseDelay(0),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx)
	}()

	time.Sleep(15 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}

func TestLogPublisher(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	publisher := NewLogPublisher(log.NewEntry(logger))

	require.NoError(t, publisher.Publish(context.Background(), categoryEvent("msg-6")))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, domain.EventCategoryCreated, hook.LastEntry().Data["event_type"])
}

type stubOutboxRepo struct {
	mu        sync.Mutex
	pending   []domain.OutboxMessage
	sentIDs   []string
	failedIDs []string
}

func (s *stubOutboxRepo) Enqueue(_ context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	return msg, nil
}

func (s *stubOutboxRepo) PullPending(_ context.Context, limit int) ([]domain.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit >= len(s.pending) {
		return append([]domain.OutboxMessage(nil), s.pending...), nil
	}
	return append([]domain.OutboxMessage(nil), s.pending[:limit]...), nil
}

func (s *stubOutboxRepo) Stats(context.Context) (domain.OutboxStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := domain.OutboxStats{PendingCount: len(s.pending)}
	if len(s.pending) > 0 {
		stats.OldestPendingAt = time.Now().UTC().Add(-time.Second)
	}
	return stats, nil
}

func (s *stubOutboxRepo) MarkSent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sentIDs = append(s.sentIDs, id)
	return nil
}

func (s *stubOutboxRepo) MarkFailed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failedIDs = append(s.failedIDs, id)
	return nil
}

type stubPublisher struct {
	mu             sync.Mutex
	err            error
	sequenceErrors []error
	callCount      int
}

func (s *stubPublisher) Publish(context.Context, domain.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.callCount++
	if len(s.sequenceErrors) > 0 {
		err := s.sequenceErrors[0]
		s.sequenceErrors = s.sequenceErrors[1:]
		return err
	}
	return s.err
}

func (s *stubPublisher) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

type stubDeadLetter struct {
	err    error
	causes []error
}

func (s *stubDeadLetter) PublishDeadLetter(_ context.Context, _ domain.OutboxMessage, cause error) error {
	s.causes = append(s.causes, cause)
	return s.err
}

var (
	_ domain.OutboxRepository = (*stubOutboxRepo)(nil)
	_ domain.OutboxPublisher  = (*stubPublisher)(nil)
	_ DeadLetterPublisher     = (*stubDeadLetter)(nil)
)
