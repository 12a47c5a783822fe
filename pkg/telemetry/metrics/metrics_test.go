package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWalkMetrics_NodeVisited(t *testing.T) {
	registry := prometheus.NewRegistry()
	wm := NewWalkMetrics(DefaultConfig(), registry)

	wm.NodeVisited("sel.core/and")
	wm.NodeVisited("sel.core/and")
	wm.NodeVisited("opaque")

	got := testutil.ToFloat64(wm.nodesVisited.WithLabelValues("sel.core/and"))
	if got != 2 {
		t.Errorf("nodes_visited_total{kind=sel.core/and} = %v, want 2", got)
	}
	got = testutil.ToFloat64(wm.nodesVisited.WithLabelValues("opaque"))
	if got != 1 {
		t.Errorf("nodes_visited_total{kind=opaque} = %v, want 1", got)
	}
}

func TestWalkMetrics_ObserveWalk(t *testing.T) {
	registry := prometheus.NewRegistry()
	wm := NewWalkMetrics(nil, registry)

	wm.ObserveWalk(5*time.Microsecond, nil)
	wm.ObserveWalk(time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(wm.walksTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("walks_total{outcome=ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(wm.walksTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("walks_total{outcome=error} = %v, want 1", got)
	}
}

func TestRegistryMetrics_ObserveReload(t *testing.T) {
	registry := prometheus.NewRegistry()
	rm := NewRegistryMetrics(nil, registry)

	rm.ObserveReload(12, nil)
	rm.ObserveReload(0, errors.New("load failed"))

	if got := testutil.ToFloat64(rm.reloadsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("registry_reloads_total{outcome=ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rm.reloadsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("registry_reloads_total{outcome=error} = %v, want 1", got)
	}
	// A failed reload must not clobber the last good schema count.
	if got := testutil.ToFloat64(rm.schemas); got != 12 {
		t.Errorf("registry_schemas = %v, want 12", got)
	}
}

func TestNewWalkMetrics_NilRegistry(t *testing.T) {
	// Must not panic or register against the global default registry.
	wm := NewWalkMetrics(nil, nil)
	wm.NodeVisited("sel.core/tuple")
	wm.ObserveWalk(time.Microsecond, nil)
}
