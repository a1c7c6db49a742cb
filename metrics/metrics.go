// Package metrics exports field activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/plus3/emberfall/field"
	"github.com/plus3/emberfall/obstacle"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Collector holds the emberfall metrics. It observes a Field for spawns and removals and is fed
// per-frame gauges by System.
type Collector struct {
	Obstacles  prometheus.Gauge
	Particles  prometheus.Gauge
	Spawned    *prometheus.CounterVec
	Removed    *prometheus.CounterVec
	FrameDelta prometheus.Histogram
}

// NewCollector registers the metrics with reg. Metric cardinality is bounded by the obstacle
// types and removal reasons.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		Obstacles: factory.NewGauge(prometheus.GaugeOpts{
			Name: "emberfall_obstacles",
			Help: "Obstacles currently on the field",
		}),
		Particles: factory.NewGauge(prometheus.GaugeOpts{
			Name: "emberfall_particles",
			Help: "Live particles across all obstacles",
		}),
		Spawned: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emberfall_obstacles_spawned_total",
			Help: "Obstacles added to the field",
		}, []string{"type"}),
		Removed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emberfall_obstacles_removed_total",
			Help: "Obstacles removed from the field",
		}, []string{"reason"}),
		FrameDelta: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "emberfall_frame_seconds",
			Help:    "Simulated time advanced per frame",
			Buckets: []float64{0.004, 0.008, 0.0167, 0.025, 0.033, 0.05, 0.1, 0.25},
		}),
	}
}

// ObstacleSpawned implements field.Observer.
func (c *Collector) ObstacleSpawned(_ field.ID, o *obstacle.Obstacle) {
	c.Spawned.WithLabelValues(o.Type().String()).Inc()
}

// ObstacleRemoved implements field.Observer.
func (c *Collector) ObstacleRemoved(_ field.ID, _ *obstacle.Obstacle, reason field.Reason) {
	c.Removed.WithLabelValues(string(reason)).Inc()
}

// System updates the gauges and the frame histogram once per frame. Register it last so it
// sees the field after every other system ran.
type System struct {
	Collector *Collector
}

func (s *System) Execute(frame *field.Frame) {
	s.Collector.Obstacles.Set(float64(frame.Field.Len()))
	s.Collector.Particles.Set(float64(frame.Field.ParticleCount()))
	s.Collector.FrameDelta.Observe(frame.DeltaTime)
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
