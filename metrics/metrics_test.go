package metrics

import (
	"errors"
	"testing"

	"github.com/mwantia/ossfm/namespace"
	"github.com/mwantia/ossfm/store/ephemeral"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_PlanExecution(t *testing.T) {
	ctx := t.Context()
	reg := prometheus.NewRegistry()
	m := New(reg)

	eb := ephemeral.NewEphemeralBackend()
	if err := eb.Put(ctx, "data/a.txt", []byte("a")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	plan, err := namespace.PlanSoftDelete("data/a.txt", "data/", "trash/")
	if err != nil {
		t.Fatalf("PlanSoftDelete failed: %v", err)
	}
	if err := namespace.NewExecutor(eb, m).Execute(ctx, plan); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// Copy of a missing source fails on the first step
	failing, _ := namespace.PlanMove("data/missing.txt", "other/")
	if err := namespace.NewExecutor(eb, m).Execute(ctx, failing); err == nil {
		t.Fatalf("Expected move of missing key to fail")
	}

	expected := []struct {
		name  string
		value float64
		got   float64
	}{
		{"soft delete success", 1, testutil.ToFloat64(m.plansTotal.WithLabelValues("soft_delete", "success"))},
		{"move failure", 1, testutil.ToFloat64(m.plansTotal.WithLabelValues("move", "failure"))},
		{"copy success", 1, testutil.ToFloat64(m.stepsTotal.WithLabelValues("copy", "success"))},
		{"copy failure", 1, testutil.ToFloat64(m.stepsTotal.WithLabelValues("copy", "failure"))},
		{"delete success", 1, testutil.ToFloat64(m.stepsTotal.WithLabelValues("delete", "success"))},
	}

	for _, exp := range expected {
		if exp.got != exp.value {
			t.Errorf("%s: expected %v, got %v", exp.name, exp.value, exp.got)
		}
	}
}

func TestMetrics_ListAndDownload(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveList("minio", nil)
	m.ObserveList("minio", errors.New("timeout"))
	m.ObserveDownload(512)
	m.ObservePartialMutation(namespace.KindRename)

	count, err := testutil.GatherAndCount(reg, "ossfm_list_pages_total")
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 list series, got %d", count)
	}

	count, err = testutil.GatherAndCount(reg, "ossfm_partial_mutations_total", "ossfm_downloaded_bytes_total")
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected partial mutation and download series, got %d", count)
	}
}
