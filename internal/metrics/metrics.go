// Package metrics counts the progress of a pass and writes it to a
// node-exporter textfile when the run ends.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bibstats/internal/anomaly"
)

// Pass holds the metrics of one run on its own registry, so runs in the
// same process never share counters.
type Pass struct {
	registry *prometheus.Registry

	records   *prometheus.CounterVec
	anomalies *prometheus.GaugeVec
	duration  prometheus.Gauge
	lastRun   prometheus.Gauge
}

func NewPass() *Pass {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Pass{
		registry: reg,
		records: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bibstats_records_total",
			Help: "Records committed by the pass, by record type",
		}, []string{"type"}),
		anomalies: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bibstats_anomalies",
			Help: "Entries kept per anomaly log",
		}, []string{"log"}),
		duration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bibstats_run_duration_seconds",
			Help: "Wall time of the last run",
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bibstats_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
	}
}

// ObserveRecord counts one committed record.
func (p *Pass) ObserveRecord(recordType string) {
	p.records.WithLabelValues(recordType).Inc()
}

// Finish records the run duration and the size of every anomaly log.
func (p *Pass) Finish(elapsed time.Duration, logs []*anomaly.Log) {
	p.duration.Set(elapsed.Seconds())
	p.lastRun.SetToCurrentTime()
	for _, l := range logs {
		p.anomalies.WithLabelValues(l.Title()).Set(float64(l.Len()))
	}
}

func (p *Pass) Registry() *prometheus.Registry {
	return p.registry
}

// WriteTextfile writes every metric to path in the text exposition format.
func (p *Pass) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
