package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestOutboxPublisherMetricsRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOutboxPublisherMetrics(reg)

	m.IncSuccess("transport_accepted")
	m.IncSuccess("transport_accepted")
	m.IncFailure("transport_signed")
	m.ObserveDuration("transport_accepted", 150*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	byName := map[string]*dto.MetricFamily{}
	for _, family := range families {
		byName[family.GetName()] = family
	}

	success := byName["outbox_publish_success"]
	if success == nil {
		t.Fatal("missing success counter")
	}
	if got := counterValue(t, success, "transport_accepted"); got != 2 {
		t.Fatalf("expected 2 successes got %v", got)
	}

	failure := byName["outbox_publish_failure"]
	if failure == nil {
		t.Fatal("missing failure counter")
	}
	if got := counterValue(t, failure, "transport_signed"); got != 1 {
		t.Fatalf("expected 1 failure got %v", got)
	}

	duration := byName["outbox_publish_duration_seconds"]
	if duration == nil {
		t.Fatal("missing duration histogram")
	}
	if duration.GetMetric()[0].GetHistogram().GetSampleCount() != 1 {
		t.Fatal("expected one duration sample")
	}
}

func TestOutboxPublisherMetricsNilSafe(t *testing.T) {
	var m *OutboxPublisherMetrics
	m.IncSuccess("x")
	m.IncFailure("x")
	m.ObserveDuration("x", time.Second)

	empty := NewOutboxPublisherMetrics(nil)
	empty.IncSuccess("x")
}

func TestNormalizeLabel(t *testing.T) {
	if got := normalizeLabel(""); got != "unknown" {
		t.Fatalf("expected unknown got %s", got)
	}
	if got := normalizeLabel("transport_accepted"); got != "transport_accepted" {
		t.Fatalf("unexpected label %s", got)
	}
}

func counterValue(t *testing.T, family *dto.MetricFamily, label string) float64 {
	t.Helper()
	for _, metric := range family.GetMetric() {
		for _, pair := range metric.GetLabel() {
			if pair.GetValue() == label {
				return metric.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("no metric with label %s", label)
	return 0
}
