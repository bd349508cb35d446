package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRotation(t *testing.T) {
	m := New()

	m.RecordRotation("G1", "committed")
	m.RecordRotation("G1", "committed")
	m.RecordRotation("G1", "rejected_in_motion")

	if got := testutil.ToFloat64(m.rotationsTotal.WithLabelValues("G1", "committed")); got != 2 {
		t.Errorf("Expected 2 committed, got %f", got)
	}
	if got := testutil.ToFloat64(m.rotationsTotal.WithLabelValues("G1", "rejected_in_motion")); got != 1 {
		t.Errorf("Expected 1 rejected, got %f", got)
	}
}

func TestRotationLifecycle(t *testing.T) {
	m := New()

	m.RotationStarted("G1", 9)
	if got := testutil.ToFloat64(m.activeRotations.WithLabelValues("G1")); got != 1 {
		t.Errorf("Expected 1 active rotation, got %f", got)
	}
	if got := testutil.ToFloat64(m.rotatedPlanets.WithLabelValues("G1")); got != 9 {
		t.Errorf("Expected 9 rotated planets, got %f", got)
	}

	m.RotationFinished("G1", 5)
	if got := testutil.ToFloat64(m.activeRotations.WithLabelValues("G1")); got != 0 {
		t.Errorf("Expected 0 active rotations, got %f", got)
	}
	if n := testutil.CollectAndCount(m.rotationDuration); n != 1 {
		t.Errorf("Expected 1 duration series, got %d", n)
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var m *Collector

	m.RecordRotation("G1", "committed")
	m.RotationStarted("G1", 1)
	m.RotationFinished("G1", 1)
	m.RecordGravityChange("Player")
	m.RecordHit("P1")
	m.ObserveTick(time.Millisecond)

	if m.Registry() != nil {
		t.Error("Expected nil registry from nil collector")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordGravityChange("Player")
	m.RecordHit("P1")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, name := range []string{"gravity_direction_changes_total", "ground_pound_hits_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("Expected %s in output", name)
		}
	}
}
