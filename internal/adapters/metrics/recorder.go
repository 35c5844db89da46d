// Package metrics records build measurements with Prometheus collectors.
package metrics

import (
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "kiln"

var _ ports.Metrics = (*Recorder)(nil)

// Recorder implements ports.Metrics using Prometheus metrics.
type Recorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	outcomes      *prom.CounterVec
}

// NewRecorder constructs and registers the kiln collectors on reg.
// A nil reg gets a private registry.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	r := &Recorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build pipeline stages",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build request outcomes by strategy and error kind",
		}, []string{"strategy", "kind"}),
	}
	reg.MustRegister(r.stageDuration, r.stageResults, r.outcomes)
	return r
}

// ObserveStage records the duration and outcome of one pipeline stage.
func (r *Recorder) ObserveStage(stage string, d time.Duration, failed bool) {
	if r == nil {
		return
	}
	result := "success"
	if failed {
		result = "failed"
	}
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	r.stageResults.WithLabelValues(stage, result).Inc()
}

// RecordOutcome records the final error kind of a request.
func (r *Recorder) RecordOutcome(strategy, kind string) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(strategy, kind).Inc()
}

// WriteTextfile writes every collected metric to path in the Prometheus text format,
// suitable for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create metrics directory"), "path", path)
	}
	if err := prom.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics file"), "path", path)
	}
	return nil
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prom.Registry {
	return r.registry
}
