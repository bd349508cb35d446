// Package metrics exposes simulation counters in Prometheus format.
package metrics

import (
	"context"
	"cubeplanets/internal/logger"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the simulation metrics. A nil *Collector is valid and records
// nothing, so components can run without metrics wired in.
type Collector struct {
	registry *prometheus.Registry

	rotationsTotal   *prometheus.CounterVec
	rotationDuration *prometheus.HistogramVec
	activeRotations  *prometheus.GaugeVec
	rotatedPlanets   *prometheus.CounterVec
	gravityChanges   *prometheus.CounterVec
	hitsTotal        *prometheus.CounterVec
	tickDuration     prometheus.Histogram
}

// New creates a Collector backed by its own registry.
func New() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		rotationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cluster_rotations_total",
				Help: "Cluster rotation requests by outcome",
			},
			[]string{"galaxy", "outcome"},
		),
		rotationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cluster_rotation_duration_seconds",
				Help:    "Simulated time from commit to completion of a cluster rotation",
				Buckets: []float64{1, 2, 4, 5, 6, 8, 10, 20},
			},
			[]string{"galaxy"},
		),
		activeRotations: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cluster_rotations_active",
				Help: "Rotations currently animating",
			},
			[]string{"galaxy"},
		),
		rotatedPlanets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cluster_rotated_planets_total",
				Help: "Planets captured by committed rotations",
			},
			[]string{"galaxy"},
		),
		gravityChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gravity_direction_changes_total",
				Help: "Accepted gravity direction changes",
			},
			[]string{"body"},
		),
		hitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ground_pound_hits_total",
				Help: "Ground pound hits dispatched to planets",
			},
			[]string{"planet"},
		),
		tickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fixed_tick_duration_seconds",
				Help:    "Wall time spent in one fixed simulation tick",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
	}

	m.registry.MustRegister(
		m.rotationsTotal,
		m.rotationDuration,
		m.activeRotations,
		m.rotatedPlanets,
		m.gravityChanges,
		m.hitsTotal,
		m.tickDuration,
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Collector) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRotation counts one rotation request outcome for a galaxy.
func (m *Collector) RecordRotation(galaxy, outcome string) {
	if m == nil {
		return
	}
	m.rotationsTotal.WithLabelValues(galaxy, outcome).Inc()
}

// RotationStarted tracks a committed rotation and the planets it captured.
func (m *Collector) RotationStarted(galaxy string, planets int) {
	if m == nil {
		return
	}
	m.activeRotations.WithLabelValues(galaxy).Inc()
	m.rotatedPlanets.WithLabelValues(galaxy).Add(float64(planets))
}

// RotationFinished observes how long the rotation took in simulated seconds.
func (m *Collector) RotationFinished(galaxy string, simulated float32) {
	if m == nil {
		return
	}
	m.activeRotations.WithLabelValues(galaxy).Dec()
	m.rotationDuration.WithLabelValues(galaxy).Observe(float64(simulated))
}

func (m *Collector) RecordGravityChange(body string) {
	if m == nil {
		return
	}
	m.gravityChanges.WithLabelValues(body).Inc()
}

func (m *Collector) RecordHit(planet string) {
	if m == nil {
		return
	}
	m.hitsTotal.WithLabelValues(planet).Inc()
}

func (m *Collector) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(d.Seconds())
}

// Handler serves the collector's registry.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.L().Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
