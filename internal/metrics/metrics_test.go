package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

func TestUseCaseMetrics_Observe(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewUseCaseMetrics(reg)

	started := time.Now().Add(-10 * time.Millisecond)
	m.Observe("create_category", started, nil)
	m.Observe("create_category", started, domain.ErrDuplicateName)
	m.Observe("create_category", started, errors.New("boom"))

	if got := testutil.ToFloat64(m.calls.WithLabelValues("create_category", OutcomeOK)); got != 1 {
		t.Fatalf("expected 1 ok call, got %v", got)
	}
	if got := testutil.ToFloat64(m.calls.WithLabelValues("create_category", string(domain.KindDuplicateName))); got != 1 {
		t.Fatalf("expected 1 duplicate_name call, got %v", got)
	}
	if got := testutil.ToFloat64(m.calls.WithLabelValues("create_category", string(domain.KindInternal))); got != 1 {
		t.Fatalf("expected 1 internal call, got %v", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	histogram := findFamily(families, "burger_usecase_duration_seconds")
	if histogram == nil || histogram.GetType() != dto.MetricType_HISTOGRAM {
		t.Fatalf("duration histogram not found")
	}
	if count := histogram.GetMetric()[0].GetHistogram().GetSampleCount(); count != 3 {
		t.Fatalf("expected 3 samples, got %d", count)
	}
}

func TestOutboxMetrics_Backlog(t *testing.T) {
	t.Parallel()

	m := NewOutboxMetrics(prometheus.NewRegistry())
	now := time.Now()

	m.Backlog(domain.OutboxStats{PendingCount: 4, OldestPendingAt: now.Add(-30 * time.Second)}, now)
	if got := testutil.ToFloat64(m.pending); got != 4 {
		t.Fatalf("expected 4 pending, got %v", got)
	}
	if got := testutil.ToFloat64(m.oldestAge); got != 30 {
		t.Fatalf("expected age 30s, got %v", got)
	}

	m.Backlog(domain.OutboxStats{}, now)
	if got := testutil.ToFloat64(m.oldestAge); got != 0 {
		t.Fatalf("expected age reset, got %v", got)
	}

	m.Attempt(PublishSent)
	m.Attempt(PublishSent)
	if got := testutil.ToFloat64(m.attempts.WithLabelValues(PublishSent)); got != 2 {
		t.Fatalf("expected 2 sent attempts, got %v", got)
	}
}

func TestRegister_ReusesExistingCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	first := NewHTTPMetrics(reg)
	second := NewHTTPMetrics(reg)

	first.Observe("GET", "/products", 200, time.Millisecond)
	second.Observe("GET", "/products", 200, time.Millisecond)

	if got := testutil.ToFloat64(first.requests.WithLabelValues("GET", "/products", "200")); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func TestNilMetricsAreNoop(t *testing.T) {
	t.Parallel()

	var (
		u *UseCaseMetrics
		o *OutboxMetrics
		h *HTTPMetrics
	)
	u.Observe("x", time.Now(), nil)
	o.Attempt(PublishFailed)
	o.Backlog(domain.OutboxStats{PendingCount: 1}, time.Now())
	h.Observe("GET", "", 500, 0)
}

func findFamily(families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}
